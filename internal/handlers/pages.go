package handlers

import "github.com/gofiber/fiber/v2"

// HTML kabukları ./public altından servis edilir; içerikleri JSON API'yi
// istemci tarafında tüketir.

type PagesHandler struct {
	PublicDir string
}

func NewPagesHandler(publicDir string) *PagesHandler {
	return &PagesHandler{PublicDir: publicDir}
}

func (h *PagesHandler) Index(c *fiber.Ctx) error {
	return c.SendFile(h.PublicDir + "/index.html")
}

func (h *PagesHandler) Admin(c *fiber.Ctx) error {
	return c.SendFile(h.PublicDir + "/admin.html")
}

func (h *PagesHandler) BayiLogin(c *fiber.Ctx) error {
	return c.SendFile(h.PublicDir + "/bayi-login.html")
}

func (h *PagesHandler) BayiDashboard(c *fiber.Ctx) error {
	return c.SendFile(h.PublicDir + "/bayi-dashboard.html")
}
