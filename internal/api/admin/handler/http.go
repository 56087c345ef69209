package adminHandler

import (
	adminService "VyapaarAI/internal/api/admin/service"
	"VyapaarAI/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	adminService adminService.IAdminService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as adminService.IAdminService,
) *AdminHandler {
	return &AdminHandler{
		log:          log,
		validator:    validator,
		middleware:   middleware,
		adminService: as,
	}
}

func (h *AdminHandler) Start(srv fiber.Router) {
	adminGroup := srv.Group("/admin")
	adminGroup.Post("/login", h.middleware.NewRateLimiter, h.Login)
	adminGroup.Get("/me", h.middleware.NewTokenMiddleware, h.Me)
}
