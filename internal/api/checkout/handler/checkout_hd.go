package checkoutHandler

import (
	"VyapaarAI/internal/api/checkout"
	"VyapaarAI/internal/middleware"
	contextPkg "VyapaarAI/pkg/context"
	"VyapaarAI/pkg/handlerUtil"
	"VyapaarAI/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *CheckoutHandler) Detect(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.detectTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	file, err := ctx.FormFile("file")
	if err != nil {
		return errHandler.Handle(ctx, requestID, checkout.ErrMissingFile, ctx.Path(), "read_form_file")
	}

	h.log.WithFields(log.Fields{
		"request_id":   requestID,
		"file_name":    file.Filename,
		"file_size":    file.Size,
		"content_type": file.Header.Get(fiber.HeaderContentType),
	}).Debug("Processing detection upload")

	content, err := file.Open()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
	}
	defer content.Close()

	result, err := h.checkoutService.Detect(c, checkout.UploadedImage{
		Filename:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Size:        file.Size,
		Body:        content,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errHandler.HandleRequestTimeout(ctx)
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "detect_products")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		if result.BillID != "" {
			ctx.Set(middleware.BillIDHeader, result.BillID)
		}
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, checkout.DetectResponse{
			Bill:        result.Bill,
			OutputImage: result.OutputImage,
			Message:     result.Message,
		})
	}
}

func (h *CheckoutHandler) GetBill(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	bill, err := h.checkoutService.GetBill(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_bill")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, checkout.BillResponse{
			ID:   id,
			Bill: bill,
		})
	}
}
