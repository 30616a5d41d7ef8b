package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
	"github.com/emrekarsli/tvservis_backend/internal/ratelimit"
)

// RateLimit istemci IP'sine göre sabit pencereli limit uygular.
// Proxy arkasında X-Forwarded-For zincirinin ilk adresi esas alınır.
func RateLimit(l *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(clientKey(c)) {
			return apperrors.NewRateLimitError()
		}
		return c.Next()
	}
}

func clientKey(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i != -1 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
