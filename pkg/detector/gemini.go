package detector

import (
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/annotate"
	"VyapaarAI/pkg/gemini"
	"VyapaarAI/pkg/utils"
	"context"
	"fmt"
	"image"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const geminiPrompt = `You are the product detector of a retail self-checkout.
List every individual product package visible in the image. Count each physical item separately.
Use the closest name from this list as the label when one applies, otherwise describe the product briefly:
%s

Return ONLY a JSON array, no markdown, in this exact format:
[{"label": "Product Name", "confidence": 0.0, "box_2d": [ymin, xmin, ymax, xmax]}]
box_2d values are integers normalised to 0-1000. Return [] when there are no products.`

type geminiBox struct {
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	Box2D      []float64 `json:"box_2d"`
}

// GeminiDetector asks a Gemini vision model for product boxes.
type GeminiDetector struct {
	client gemini.IGemini
	names  []string
	index  map[string]int
}

func NewGeminiDetector(client gemini.IGemini, productNames []string) *GeminiDetector {
	index := make(map[string]int, len(productNames))
	for i, n := range productNames {
		index[n] = i
	}
	return &GeminiDetector{
		client: client,
		names:  productNames,
		index:  index,
	}
}

func (d *GeminiDetector) Name() string {
	return BackendGemini
}

func (d *GeminiDetector) Detect(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	frame, err := utils.EncodeJPEG(img)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	prompt := fmt.Sprintf(geminiPrompt, "- "+strings.Join(d.names, "\n- "))
	text, err := d.client.AnalyzeImage(ctx, "jpeg", frame, prompt)
	if err != nil {
		return nil, fmt.Errorf("gemini analyze: %w", err)
	}

	detections, err := d.parse(text, img.Bounds())
	if err != nil {
		return nil, err
	}

	return FilterByConfidence(detections), nil
}

func (d *GeminiDetector) parse(text string, bounds image.Rectangle) ([]entity.Detection, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var boxes []geminiBox
	if err := jsoniter.UnmarshalFromString(text, &boxes); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	out := make([]entity.Detection, 0, len(boxes))
	for _, b := range boxes {
		classID, ok := d.index[b.Label]
		if !ok {
			classID = -1
		}
		det := entity.Detection{
			ClassID:    classID,
			Label:      b.Label,
			Confidence: b.Confidence,
		}
		if len(b.Box2D) == 4 {
			det.Box = entity.BoundingBox{
				X1: float64(bounds.Min.X) + b.Box2D[1]/1000*w,
				Y1: float64(bounds.Min.Y) + b.Box2D[0]/1000*h,
				X2: float64(bounds.Min.X) + b.Box2D[3]/1000*w,
				Y2: float64(bounds.Min.Y) + b.Box2D[2]/1000*h,
			}
		}
		out = append(out, det)
	}

	return out, nil
}

func (d *GeminiDetector) Annotate(img image.Image, detections []entity.Detection) (image.Image, error) {
	return annotate.Draw(img, detections), nil
}

func (d *GeminiDetector) Close() error {
	return d.client.Close()
}
