package detector

import (
	"VyapaarAI/internal/entity"
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
)

// ConfidenceThreshold is the minimum score a detection needs to be reported.
const ConfidenceThreshold = 0.25

const (
	BackendYOLO   = "yolo"
	BackendRemote = "remote"
	BackendGemini = "gemini"
)

var ErrBackendUnavailable = errors.New("detector backend unavailable")

type IDetector interface {
	Detect(ctx context.Context, img image.Image) ([]entity.Detection, error)
	Annotate(img image.Image, detections []entity.Detection) (image.Image, error)
	Name() string
	Close() error
}

// FilterByConfidence drops detections under ConfidenceThreshold, keeping order.
func FilterByConfidence(detections []entity.Detection) []entity.Detection {
	out := make([]entity.Detection, 0, len(detections))
	for _, d := range detections {
		if d.Confidence >= ConfidenceThreshold {
			out = append(out, d)
		}
	}
	return out
}

// Labels maps a model class index to its label.
type Labels []string

func (l Labels) For(classID int) string {
	if classID >= 0 && classID < len(l) && l[classID] != "" {
		return l[classID]
	}
	return fmt.Sprintf("class_%d", classID)
}

// LoadLabels reads one label per line; blank lines keep their index.
func LoadLabels(path string) (Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels file: %w", err)
	}
	defer f.Close()

	var labels Labels
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		labels = append(labels, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read labels file: %w", err)
	}

	return labels, nil
}
