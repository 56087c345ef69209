//go:build gocv
// +build gocv

package yolo

import (
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/annotate"
	"VyapaarAI/pkg/detector"
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

const (
	inputSize    = 640
	nmsThreshold = 0.45
)

var padColor = color.RGBA{R: 114, G: 114, B: 114, A: 0}

// Detector runs a YOLOv8 ONNX export through OpenCV's DNN module.
type Detector struct {
	net    gocv.Net
	labels detector.Labels
	mu     sync.Mutex
}

func New(modelPath string, labels detector.Labels) (*Detector, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s: %w", modelPath, err)
	}

	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network from %s", modelPath)
	}

	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set preferable backend or target")
	}

	return &Detector{
		net:    net,
		labels: labels,
	}, nil
}

func (d *Detector) Name() string {
	return detector.BackendYOLO
}

func (d *Detector) Detect(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("decoded image is empty")
	}

	// Pad to a square so one scale factor maps boxes back.
	side := max(mat.Cols(), mat.Rows())
	square := gocv.NewMat()
	defer square.Close()
	gocv.CopyMakeBorder(mat, &square, 0, side-mat.Rows(), 0, side-mat.Cols(), gocv.BorderConstant, padColor)
	scale := float64(side) / inputSize

	blob := gocv.BlobFromImage(square, 1.0/255.0, image.Pt(inputSize, inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	d.mu.Unlock()
	defer output.Close()

	return d.decode(output, scale, mat.Cols(), mat.Rows())
}

// decode reads the [1, 4+nc, N] head: cx, cy, w, h then one score per class.
func (d *Detector) decode(output gocv.Mat, scale float64, width, height int) ([]entity.Detection, error) {
	sizes := output.Size()
	if len(sizes) != 3 || sizes[1] <= 4 {
		return nil, fmt.Errorf("unexpected output shape %v", sizes)
	}
	channels := sizes[1]

	flat := output.Reshape(1, channels)
	defer flat.Close()
	rows := gocv.NewMat()
	defer rows.Close()
	gocv.Transpose(flat, &rows)

	var (
		boxes   []image.Rectangle
		scores  []float32
		classes []int
	)
	for i := 0; i < rows.Rows(); i++ {
		classID, best := -1, float32(0)
		for c := 4; c < channels; c++ {
			if s := rows.GetFloatAt(i, c); s > best {
				classID, best = c-4, s
			}
		}
		if best < detector.ConfidenceThreshold {
			continue
		}

		cx, cy := float64(rows.GetFloatAt(i, 0)), float64(rows.GetFloatAt(i, 1))
		w, h := float64(rows.GetFloatAt(i, 2)), float64(rows.GetFloatAt(i, 3))
		rect := image.Rect(
			int((cx-w/2)*scale), int((cy-h/2)*scale),
			int((cx+w/2)*scale), int((cy+h/2)*scale),
		).Intersect(image.Rect(0, 0, width, height))

		boxes = append(boxes, rect)
		scores = append(scores, best)
		classes = append(classes, classID)
	}

	if len(boxes) == 0 {
		return []entity.Detection{}, nil
	}

	keep := gocv.NMSBoxes(boxes, scores, detector.ConfidenceThreshold, nmsThreshold)

	out := make([]entity.Detection, 0, len(keep))
	for _, i := range keep {
		r := boxes[i]
		out = append(out, entity.Detection{
			ClassID:    classes[i],
			Label:      d.labels.For(classes[i]),
			Confidence: float64(scores[i]),
			Box: entity.BoundingBox{
				X1: float64(r.Min.X), Y1: float64(r.Min.Y),
				X2: float64(r.Max.X), Y2: float64(r.Max.Y),
			},
		})
	}

	return out, nil
}

func (d *Detector) Annotate(img image.Image, detections []entity.Detection) (image.Image, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	for _, det := range detections {
		c := annotate.ColorFor(det.ClassID)
		rect := det.Box.Rect()
		if err := gocv.Rectangle(&mat, rect, c, 2); err != nil {
			return nil, fmt.Errorf("failed to draw rectangle: %w", err)
		}

		pt := image.Pt(rect.Min.X, max(rect.Min.Y-5, 12))
		if err := gocv.PutText(&mat, annotate.Caption(det), pt, gocv.FontHersheySimplex, 0.5, c, 1); err != nil {
			return nil, fmt.Errorf("failed to draw text: %w", err)
		}
	}

	return mat.ToImage()
}

func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}
