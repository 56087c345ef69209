//go:build !gocv
// +build !gocv

package yolo

import (
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/detector"
	"context"
	"fmt"
	"image"
)

// Detector is a placeholder when the binary is built without OpenCV.
type Detector struct{}

// New always fails without the gocv build tag.
func New(modelPath string, _ detector.Labels) (*Detector, error) {
	return nil, fmt.Errorf("%w: yolo needs the gocv build tag (model %s)", detector.ErrBackendUnavailable, modelPath)
}

func (d *Detector) Name() string {
	return detector.BackendYOLO
}

func (d *Detector) Detect(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	return nil, detector.ErrBackendUnavailable
}

func (d *Detector) Annotate(img image.Image, detections []entity.Detection) (image.Image, error) {
	return nil, detector.ErrBackendUnavailable
}

func (d *Detector) Close() error {
	return nil
}
