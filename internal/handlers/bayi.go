package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
	"github.com/emrekarsli/tvservis_backend/internal/auth"
	"github.com/emrekarsli/tvservis_backend/internal/db"
	"github.com/emrekarsli/tvservis_backend/internal/middleware"
	"github.com/emrekarsli/tvservis_backend/internal/models"
	"github.com/emrekarsli/tvservis_backend/internal/services/credit"
	"github.com/emrekarsli/tvservis_backend/internal/validation"
)

type BayiHandler struct {
	DB        *db.DB
	Credit    *credit.Service
	JWTSecret string
}

func NewBayiHandler(database *db.DB, creditSvc *credit.Service, jwtSecret string) *BayiHandler {
	return &BayiHandler{DB: database, Credit: creditSvc, JWTSecret: jwtSecret}
}

// Login e-posta + parola doğrular, JWT üretir ve sunucu tarafı oturum kaydını açar.
func (h *BayiHandler) Login(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	fields, err := validation.Validate(body, validation.BayiLoginRules())
	if err != nil {
		return err
	}

	email, _ := fields["email"].(string)
	password, _ := fields["password"].(string)

	var bayi models.Bayi
	if err := h.DB.WithContext(c.UserContext()).
		Where("email = ? AND aktif = ? AND aktif_login = ?", email, true, true).
		First(&bayi).Error; err != nil {
		return apperrors.NewAuthenticationError("E-posta veya parola hatalı")
	}
	if !auth.CheckPassword(bayi.PasswordHash, password) {
		return apperrors.NewAuthenticationError("E-posta veya parola hatalı")
	}

	token, err := auth.SignBayiToken(h.JWTSecret, &bayi)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	oturum := models.BayiOturumu{
		BayiID:    bayi.ID,
		TokenHash: auth.TokenHash(token),
		Aktif:     true,
		ExpiresAt: time.Now().Add(auth.BayiTokenTTL),
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&oturum).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token": token,
			"bayi": fiber.Map{
				"id":           bayi.ID,
				"email":        bayi.Email,
				"firma_adi":    bayi.FirmaAdi,
				"il_id":        bayi.IlID,
				"kredi_bakiye": models.KurusToLira(bayi.KrediBakiye),
			},
		},
	})
}

// Logout oturum kaydını pasifler; token süresi dolmadan geçersizleşir.
func (h *BayiHandler) Logout(c *fiber.Ctx) error {
	bayiID := middleware.BayiID(c)
	if err := h.DB.WithContext(c.UserContext()).
		Model(&models.BayiOturumu{}).
		Where("bayi_id = ? AND aktif = ?", bayiID, true).
		Update("aktif", false).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Oturum kapatıldı"})
}

func (h *BayiHandler) Profil(c *fiber.Ctx) error {
	var bayi models.Bayi
	if err := h.DB.WithContext(c.UserContext()).First(&bayi, middleware.BayiID(c)).Error; err != nil {
		return apperrors.NewAuthenticationError("Bayi bulunamadı")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":                   bayi.ID,
			"email":                bayi.Email,
			"firma_adi":            bayi.FirmaAdi,
			"telefon":              bayi.Telefon,
			"il_id":                bayi.IlID,
			"ilce":                 bayi.Ilce,
			"kredi_bakiye":         models.KurusToLira(bayi.KrediBakiye),
			"rating":               bayi.Rating,
			"tamamlanan_is_sayisi": bayi.TamamlananIsSayisi,
		},
	})
}

func (h *BayiHandler) Bakiye(c *fiber.Ctx) error {
	var bayi models.Bayi
	if err := h.DB.WithContext(c.UserContext()).First(&bayi, middleware.BayiID(c)).Error; err != nil {
		return apperrors.NewAuthenticationError("Bayi bulunamadı")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"kredi_bakiye": models.KurusToLira(bayi.KrediBakiye)},
	})
}

// KrediHareketleri defter kayıtları, en yeniden eskiye.
func (h *BayiHandler) KrediHareketleri(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	hareketler, err := h.Credit.GetCreditHistory(c.UserContext(), middleware.BayiID(c), limit)
	if err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(hareketler))
	for _, hk := range hareketler {
		out = append(out, fiber.Map{
			"id":            hk.ID,
			"hareket_turu":  hk.HareketTuru,
			"tutar":         models.KurusToLira(hk.Tutar),
			"onceki_bakiye": models.KurusToLira(hk.OncekiBakiye),
			"yeni_bakiye":   models.KurusToLira(hk.YeniBakiye),
			"aciklama":      hk.Aciklama,
			"tarih":         hk.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

func parseBody(c *fiber.Ctx) (map[string]any, error) {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return nil, apperrors.NewValidationError([]string{"istek gövdesi geçersiz"})
	}
	return body, nil
}
