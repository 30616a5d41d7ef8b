package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emrekarsli/tvservis_backend/internal/monitor"
	"github.com/emrekarsli/tvservis_backend/pkg/logger"
)

// Perf her isteği zamanlar, monitöre yazar ve yapılandırılmış erişim logu basar.
func Perf(m *monitor.Monitor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		path := c.Route().Path
		if path == "" || path == "/" {
			path = c.Path()
		}

		m.ObserveHTTP(c.Method(), path, status, elapsed)
		logger.Info("istek",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"sure_ms", elapsed.Milliseconds(),
			"requestId", c.Locals("requestid"),
		)
		return err
	}
}
