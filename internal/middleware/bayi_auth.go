package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
	"github.com/emrekarsli/tvservis_backend/internal/auth"
	"github.com/emrekarsli/tvservis_backend/internal/db"
	"github.com/emrekarsli/tvservis_backend/internal/models"
)

// BayiAuth bayi token'ını doğrular: imza + süre kontrolünün ardından sunucu
// tarafı oturum kaydı da aranır (satır var, aktif, süresi geçmemiş). Böylece
// logout edilmiş token'lar süresi dolmadan da geçersizleşir.
//
// bypassToken yalnızca devMode açıkken ve boş değilken çalışır; üretimde bu yol
// kimlik doğrulama hatasına düşer.
func BayiAuth(database *db.DB, secret, bypassToken string, devMode bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return apperrors.NewAuthenticationError("Oturum token'ı eksik")
		}

		if bypassToken != "" && tokenStr == bypassToken {
			if !devMode {
				return apperrors.NewAuthenticationError("Geçersiz oturum")
			}
			var bayi models.Bayi
			if err := database.WithContext(c.UserContext()).
				Where("aktif = ?", true).Order("id").First(&bayi).Error; err != nil {
				return apperrors.NewAuthenticationError("Geçersiz oturum")
			}
			c.Locals("bayiId", bayi.ID)
			c.Locals("bayiEmail", bayi.Email)
			c.Locals("bayiFirma", bayi.FirmaAdi)
			return c.Next()
		}

		claims, err := auth.ParseBayiToken(secret, tokenStr)
		if err != nil {
			return err
		}

		var oturum models.BayiOturumu
		if err := database.WithContext(c.UserContext()).
			Where("token_hash = ?", auth.TokenHash(tokenStr)).
			First(&oturum).Error; err != nil {
			return apperrors.NewAuthenticationError("Oturum bulunamadı")
		}
		if !oturum.Gecerli(time.Now()) || oturum.BayiID != claims.BayiID {
			return apperrors.NewAuthenticationError("Oturum sonlandırılmış")
		}

		c.Locals("bayiId", claims.BayiID)
		c.Locals("bayiEmail", claims.Email)
		c.Locals("bayiFirma", claims.FirmaAdi)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// BayiID handler'lar için kısayol.
func BayiID(c *fiber.Ctx) uint {
	id, _ := c.Locals("bayiId").(uint)
	return id
}
