package checkoutHandler

import (
	checkoutService "VyapaarAI/internal/api/checkout/service"
	"VyapaarAI/internal/middleware"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

const DefaultDetectTimeout = 60 * time.Second

type CheckoutHandler struct {
	log             *logrus.Logger
	middleware      middleware.Middleware
	checkoutService checkoutService.ICheckoutService
	detectTimeout   time.Duration
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	cs checkoutService.ICheckoutService,
	detectTimeout time.Duration,
) *CheckoutHandler {
	if detectTimeout <= 0 {
		detectTimeout = DefaultDetectTimeout
	}

	return &CheckoutHandler{
		log:             log,
		middleware:      middleware,
		checkoutService: cs,
		detectTimeout:   detectTimeout,
	}
}

// StartPublic mounts the upload endpoint at the root, where the web client expects it.
func (h *CheckoutHandler) StartPublic(srv fiber.Router) {
	srv.Post("/detect", h.middleware.NewRateLimiter, h.Detect)
}

func (h *CheckoutHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	checkoutGroup := srv.Group("/checkout")
	checkoutGroup.Use("/ws", wsMiddleware)
	checkoutGroup.Get("/ws", websocket.New(h.handleStream))

	srv.Get("/bills/:id", h.GetBill)
}
