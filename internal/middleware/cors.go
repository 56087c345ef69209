package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const DefaultCORSOrigin = "http://localhost:3000"

// NewCORS allows the single configured frontend origin with credentials,
// every method and whatever headers the browser asks for.
func NewCORS(origin string) fiber.Handler {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		origin = DefaultCORSOrigin
	}

	// fiber refuses credentials together with a wildcard origin
	credentials := origin != "*"

	return cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowCredentials: credentials,
		AllowMethods: strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodHead, fiber.MethodPut,
			fiber.MethodDelete, fiber.MethodPatch, fiber.MethodOptions,
		}, ","),
		AllowHeaders:  "",
		ExposeHeaders: strings.Join([]string{RequestIDKey, BillIDHeader}, ","),
	})
}
