package detector

import (
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/annotate"
	"VyapaarAI/pkg/utils"
	websocketPkg "VyapaarAI/pkg/websocket"
	"context"
	"fmt"
	"image"
)

// RemoteDetector forwards frames to an inference server over a websocket.
type RemoteDetector struct {
	client websocketPkg.IWebsocket
}

func NewRemoteDetector(client websocketPkg.IWebsocket) *RemoteDetector {
	return &RemoteDetector{client: client}
}

func (d *RemoteDetector) Name() string {
	return BackendRemote
}

func (d *RemoteDetector) Detect(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	frame, err := utils.EncodeJPEG(img)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := d.client.ProcessFrame(frame)
	if err != nil {
		return nil, err
	}

	return FilterByConfidence(result.ToEntities()), nil
}

func (d *RemoteDetector) Annotate(img image.Image, detections []entity.Detection) (image.Image, error) {
	return annotate.Draw(img, detections), nil
}

func (d *RemoteDetector) Close() error {
	d.client.CloseConnections()
	return nil
}
