package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emrekarsli/tvservis_backend/internal/db"
	"github.com/emrekarsli/tvservis_backend/internal/monitor"
)

type HealthHandler struct {
	DB      *db.DB
	Monitor *monitor.Monitor
}

func NewHealthHandler(database *db.DB, m *monitor.Monitor) *HealthHandler {
	return &HealthHandler{DB: database, Monitor: m}
}

func (h *HealthHandler) Get(c *fiber.Ctx) error {
	dbOK := true
	var one int
	if err := h.DB.QueryRow(c.UserContext(), &one, "SELECT 1"); err != nil {
		dbOK = false
	}

	status := "ok"
	code := fiber.StatusOK
	if !dbOK {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":      status,
		"database":    dbOK,
		"performance": h.Monitor.Summary(),
	})
}
