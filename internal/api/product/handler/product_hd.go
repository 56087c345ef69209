package productHandler

import (
	"VyapaarAI/internal/api/product"
	"VyapaarAI/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
)

func (h *ProductHandler) ListProducts(ctx *fiber.Ctx) error {
	return handlerUtil.New(h.log).HandleSuccess(ctx, fiber.StatusOK, h.productService.ListProducts())
}

func (h *ProductHandler) Match(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var query product.MatchQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.productService.Match(query.Label))
}
