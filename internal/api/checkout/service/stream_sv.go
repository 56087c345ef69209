package checkoutService

import (
	"VyapaarAI/internal/api/checkout"
	"VyapaarAI/internal/entity"
	contextPkg "VyapaarAI/pkg/context"
	"bytes"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *checkoutService) ProcessFrame(ctx context.Context, frame []byte) (checkout.StreamResponse, error) {
	img, err := s.utils.DecodeImage(bytes.NewReader(frame), "")
	if err != nil {
		return checkout.StreamResponse{}, checkout.ErrInvalidImage
	}

	detections, err := s.detect(ctx, img)
	if err != nil {
		return checkout.StreamResponse{}, fmt.Errorf("detect products: %w", err)
	}

	return checkout.StreamResponse{
		Bill:       AssembleBill(s.catalog, detections),
		Detections: len(detections),
	}, nil
}

// Checkout finalises a bill built from the live stream. No image is kept.
func (s *checkoutService) Checkout(ctx context.Context, bill entity.Bill) (string, error) {
	if len(bill.Items) == 0 {
		return "", checkout.ErrEmptyBill
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return "", fmt.Errorf("generate bill id: %w", err)
	}

	s.cacheBill(ctx, id, bill)
	s.recordAsync(contextPkg.GetRequestID(ctx), entity.SaleRecord{
		ID:        id,
		Source:    entity.SaleSourceStream,
		Bill:      bill,
		CreatedAt: time.Now(),
	})

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"bill_id":    id,
		"total":      bill.Total,
	}).Info("Stream bill checked out")

	return id, nil
}
