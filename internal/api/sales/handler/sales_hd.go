package salesHandler

import (
	"VyapaarAI/internal/api/sales"
	contextPkg "VyapaarAI/pkg/context"
	"VyapaarAI/pkg/handlerUtil"
	"VyapaarAI/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

const salesTimeout = 10 * time.Second

func (h *SalesHandler) MonthlySales(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), salesTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query sales.MonthlyQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.salesService.MonthlySales(c, query.Months)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "monthly_sales")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *SalesHandler) ProductSales(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), salesTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query sales.ProductQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	// validated above
	var from, to time.Time
	if query.From != "" {
		from, _ = time.ParseInLocation(sales.DateLayout, query.From, time.Local)
	}
	if query.To != "" {
		to, _ = time.ParseInLocation(sales.DateLayout, query.To, time.Local)
	}

	result, err := h.salesService.ProductSales(c, from, to)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "product_sales")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *SalesHandler) Summary(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), salesTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	result, err := h.salesService.Summary(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "sales_summary")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *SalesHandler) ListSales(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), salesTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query sales.ListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.salesService.ListSales(c, query.Limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_sales")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *SalesHandler) GetSale(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), salesTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sale, err := h.salesService.GetSale(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_sale")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"sale_id":    sale.ID,
		}).Debug("Sale fetched")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, sale)
	}
}
