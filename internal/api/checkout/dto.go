package checkout

import (
	"VyapaarAI/internal/entity"
	"io"
)

const NoProductsMessage = "No products detected."

type UploadedImage struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type DetectResult struct {
	BillID      string
	Bill        entity.Bill
	Images      entity.StoredImagePair
	Detections  int
	OutputImage *string
	Message     string
}

type DetectResponse struct {
	Bill        entity.Bill `json:"bill"`
	OutputImage *string     `json:"output_image"`
	Message     string      `json:"message,omitempty"`
}

type BillResponse struct {
	ID   string      `json:"id"`
	Bill entity.Bill `json:"bill"`
}

type StreamResponse struct {
	Bill       entity.Bill `json:"bill"`
	Detections int         `json:"detections"`
}

type StreamError struct {
	Error string `json:"error"`
}

type StreamCheckoutResponse struct {
	BillID string      `json:"bill_id"`
	Bill   entity.Bill `json:"bill"`
}
