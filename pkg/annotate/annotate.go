package annotate

import (
	"VyapaarAI/internal/entity"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const thickness = 2

var palette = []color.RGBA{
	{R: 255, G: 56, B: 56, A: 255},
	{R: 255, G: 157, B: 151, A: 255},
	{R: 255, G: 112, B: 31, A: 255},
	{R: 255, G: 178, B: 29, A: 255},
	{R: 207, G: 210, B: 49, A: 255},
	{R: 72, G: 249, B: 10, A: 255},
	{R: 26, G: 147, B: 52, A: 255},
	{R: 0, G: 212, B: 187, A: 255},
	{R: 0, G: 194, B: 255, A: 255},
	{R: 52, G: 69, B: 147, A: 255},
}

// ColorFor gives each class index a stable color.
func ColorFor(classID int) color.RGBA {
	if classID < 0 {
		classID = -classID
	}
	return palette[classID%len(palette)]
}

func Caption(d entity.Detection) string {
	return fmt.Sprintf("%s %.2f", d.Label, d.Confidence)
}

// Draw returns a copy of img with one box and caption per detection.
func Draw(img image.Image, detections []entity.Detection) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	face := basicfont.Face7x13
	for _, d := range detections {
		c := ColorFor(d.ClassID)
		r := d.Box.Rect().Intersect(bounds)
		if r.Empty() {
			continue
		}

		drawRect(out, r, c)

		text := Caption(d)
		textWidth := font.MeasureString(face, text).Ceil()
		lineHeight := face.Metrics().Height.Ceil()

		top := r.Min.Y - lineHeight
		if top < bounds.Min.Y {
			top = r.Min.Y
		}
		bg := image.Rect(r.Min.X, top, r.Min.X+textWidth+4, top+lineHeight).Intersect(bounds)
		draw.Draw(out, bg, &image.Uniform{C: c}, image.Point{}, draw.Src)

		drawer := &font.Drawer{
			Dst:  out,
			Src:  image.White,
			Face: face,
			Dot:  fixed.P(bg.Min.X+2, top+face.Metrics().Ascent.Ceil()),
		}
		drawer.DrawString(text)
	}

	return out
}

func drawRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	src := &image.Uniform{C: c}
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness),
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y),
		image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), src, image.Point{}, draw.Src)
	}
}
