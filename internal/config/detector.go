package config

import (
	"VyapaarAI/pkg/catalog"
	"VyapaarAI/pkg/detector"
	"VyapaarAI/pkg/gemini"
	websocketPkg "VyapaarAI/pkg/websocket"
	"VyapaarAI/pkg/yolo"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewDetector builds the backend named by backend. A yolo request on a
// binary built without OpenCV falls back to the remote inference server.
func NewDetector(backend string, cat *catalog.Catalog, logger *logrus.Logger) (detector.IDetector, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", detector.BackendYOLO:
		labels, err := yoloLabels(cat)
		if err != nil {
			return nil, err
		}

		d, err := yolo.New(EnvString("YOLO_MODEL_PATH", "best.onnx"), labels)
		if errors.Is(err, detector.ErrBackendUnavailable) {
			logger.WithError(err).Warn("YOLO backend unavailable, falling back to remote detector")
			return detector.NewRemoteDetector(websocketPkg.NewAIWebSocketClient(logger)), nil
		}
		if err != nil {
			return nil, fmt.Errorf("load yolo model: %w", err)
		}
		return d, nil

	case detector.BackendRemote:
		return detector.NewRemoteDetector(websocketPkg.NewAIWebSocketClient(logger)), nil

	case detector.BackendGemini:
		client, err := gemini.NewGeminiClient()
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return detector.NewGeminiDetector(client, cat.Names()), nil

	default:
		return nil, fmt.Errorf("unknown detector backend %q", backend)
	}
}

func yoloLabels(cat *catalog.Catalog) (detector.Labels, error) {
	path := os.Getenv("YOLO_LABELS_PATH")
	if path == "" {
		return detector.Labels(cat.Names()), nil
	}

	labels, err := detector.LoadLabels(path)
	if err != nil {
		return nil, fmt.Errorf("load yolo labels: %w", err)
	}
	return labels, nil
}
