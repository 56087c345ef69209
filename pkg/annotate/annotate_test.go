package annotate

import (
	"VyapaarAI/internal/entity"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDraw_DoesNotMutateInput(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 80))
	detections := []entity.Detection{{
		ClassID:    3,
		Label:      "Dermi Cool",
		Confidence: 0.91,
		Box:        entity.BoundingBox{X1: 10, Y1: 30, X2: 60, Y2: 70},
	}}

	out := Draw(src, detections)

	require.Equal(t, src.Bounds(), out.Bounds())
	require.Equal(t, color.RGBA{}, src.RGBAAt(10, 50))
	require.Equal(t, ColorFor(3), out.RGBAAt(10, 50))
	require.Equal(t, ColorFor(3), out.RGBAAt(59, 50))
	require.Equal(t, color.RGBA{}, out.RGBAAt(35, 50))
}

func TestDraw_ClipsOutOfBoundsBoxes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))
	detections := []entity.Detection{
		{Label: "far", Box: entity.BoundingBox{X1: 100, Y1: 100, X2: 200, Y2: 200}},
		{Label: "edge", Box: entity.BoundingBox{X1: -5, Y1: -5, X2: 10, Y2: 10}},
	}

	require.NotPanics(t, func() { Draw(src, detections) })
}

func TestCaption(t *testing.T) {
	require.Equal(t, "Lux Purple 0.50", Caption(entity.Detection{Label: "Lux Purple", Confidence: 0.5}))
}
