package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
	"github.com/emrekarsli/tvservis_backend/internal/auth"
)

// AdminAuth admin token'ını doğrular; bayi token'larının aksine sunucu tarafı
// oturum kaydı yoktur, imza + süre yeterlidir.
func AdminAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return apperrors.NewAuthenticationError("Oturum token'ı eksik")
		}

		claims, err := auth.ParseAdminToken(secret, tokenStr)
		if err != nil {
			return err
		}

		c.Locals("adminId", claims.AdminID)
		c.Locals("adminKullanici", claims.KullaniciAdi)
		c.Locals("yetkiSeviyesi", claims.YetkiSeviyesi)
		return c.Next()
	}
}

// RequireYetki rota bazlı asgari yetki seviyesi kontrolü.
func RequireYetki(min int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seviye, ok := c.Locals("yetkiSeviyesi").(int)
		if !ok || seviye < min {
			return apperrors.NewAuthorizationError("Yetki seviyeniz bu işlem için yetersiz")
		}
		return c.Next()
	}
}

func AdminID(c *fiber.Ctx) uint {
	id, _ := c.Locals("adminId").(uint)
	return id
}
