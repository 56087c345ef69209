package middleware

import (
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/handlerUtil"
	jwtPkg "VyapaarAI/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const unauthorizedDetail = "Unauthorized, access token invalid or expired"

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	log := m.log.WithFields(logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"client_ip":  ctx.IP(),
	})

	adminToken, err := jwtPkg.VerifyTokenHeader(ctx, jwtPkg.AccessTokenSecret)
	if err != nil {
		log.WithError(err).Warn("Token verification failed")
		return m.unauthorized(ctx)
	}

	claims, ok := adminToken.Claims.(jwt.MapClaims)
	if !ok {
		log.Warn("Invalid token claims")
		return m.unauthorized(ctx)
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if username == "" || role != entity.RoleAdmin {
		log.WithField("role", role).Warn("Token is not an admin token")
		return m.unauthorized(ctx)
	}

	ctx.Locals(jwtPkg.LocalsAdminKey, entity.AdminLoginData{
		Username: username,
		Role:     role,
	})

	log.WithField("username", username).Debug("Authentication successful")
	return ctx.Next()
}

func (m *middleware) unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(handlerUtil.ErrorResponse{
		Detail: unauthorizedDetail,
		Code:   "UNAUTHORIZED",
	})
}
