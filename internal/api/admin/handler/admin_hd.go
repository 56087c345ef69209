package adminHandler

import (
	"VyapaarAI/internal/api/admin"
	contextPkg "VyapaarAI/pkg/context"
	"VyapaarAI/pkg/handlerUtil"
	jwtPkg "VyapaarAI/pkg/jwt"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *AdminHandler) Login(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req admin.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	resp, err := h.adminService.Login(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "admin_login")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
	}
}

func (h *AdminHandler) Me(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)

	data, err := jwtPkg.GetAdminLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, h.middleware.GetRequestID(ctx), err.Error())
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, admin.ProfileResponse{
		Username: data.Username,
		Role:     data.Role,
	})
}
