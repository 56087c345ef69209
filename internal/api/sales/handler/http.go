package salesHandler

import (
	salesService "VyapaarAI/internal/api/sales/service"
	"VyapaarAI/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SalesHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	salesService salesService.ISalesService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ss salesService.ISalesService,
) *SalesHandler {
	return &SalesHandler{
		log:          log,
		validator:    validator,
		middleware:   middleware,
		salesService: ss,
	}
}

func (h *SalesHandler) Start(srv fiber.Router) {
	salesGroup := srv.Group("/sales", h.middleware.NewTokenMiddleware)

	salesGroup.Get("", h.ListSales)
	salesGroup.Get("/monthly", h.MonthlySales)
	salesGroup.Get("/products", h.ProductSales)
	salesGroup.Get("/summary", h.Summary)
	salesGroup.Get("/:id", h.GetSale)
}
