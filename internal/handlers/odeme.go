package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
	"github.com/emrekarsli/tvservis_backend/internal/db"
	"github.com/emrekarsli/tvservis_backend/internal/middleware"
	"github.com/emrekarsli/tvservis_backend/internal/models"
	"github.com/emrekarsli/tvservis_backend/internal/services/credit"
	"github.com/emrekarsli/tvservis_backend/internal/services/paytr"
	"github.com/emrekarsli/tvservis_backend/internal/validation"
	"github.com/emrekarsli/tvservis_backend/pkg/logger"
)

type OdemeHandler struct {
	DB     *db.DB
	Credit *credit.Service
	Paytr  *paytr.Service
}

func NewOdemeHandler(database *db.DB, creditSvc *credit.Service, paytrSvc *paytr.Service) *OdemeHandler {
	return &OdemeHandler{DB: database, Credit: creditSvc, Paytr: paytrSvc}
}

// HavaleBildirimi bayi banka havalesi bildirir; bakiye admin onayına kadar değişmez.
func (h *OdemeHandler) HavaleBildirimi(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	fields, err := validation.Validate(body, validation.HavaleBildirimRules())
	if err != nil {
		return err
	}

	tutarTL, _ := fields["tutar"].(float64)
	odeme, err := h.Credit.ReportTransfer(
		c.UserContext(),
		middleware.BayiID(c),
		models.LiraToKurus(tutarTL),
		str(fields, "referans_no"),
		str(fields, "aciklama"),
		str(fields, "havale_tarihi"),
	)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Havale bildiriminiz alındı, onay bekliyor",
		"data": fiber.Map{
			"id":          odeme.ID,
			"tutar":       models.KurusToLira(odeme.Tutar),
			"referans_no": odeme.ReferansNo,
			"durum":       odeme.Durum,
		},
	})
}

// PaytrBaslat kart ödemesi için gateway token'ı alır ve beklemede bir
// odeme_islemi açar; kredilendirme yalnızca callback ile olur.
func (h *OdemeHandler) PaytrBaslat(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	fields, err := validation.Validate(body, []validation.Rule{
		{Field: "tutar", Required: true, Type: validation.TypeAmount, Min: validation.Num(1), Max: validation.Num(10000)},
	})
	if err != nil {
		return err
	}

	tutar := models.LiraToKurus(fields["tutar"].(float64))
	bayiID := middleware.BayiID(c)

	var bayi models.Bayi
	if err := h.DB.WithContext(c.UserContext()).First(&bayi, bayiID).Error; err != nil {
		return apperrors.NewAuthenticationError("Bayi bulunamadı")
	}

	merchantOid := "KRD" + uuid.New().String()[:18]

	odeme := models.OdemeIslemi{
		BayiID:       bayiID,
		Tutar:        tutar,
		OdemeYontemi: models.OdemePaytr,
		Durum:        models.OdemeBeklemede,
		ReferansNo:   merchantOid,
		Aciklama:     "PayTR kredi yükleme",
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&odeme).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}

	resp, err := h.Paytr.CreateToken(merchantOid, bayi.Email, c.IP(), bayi.FirmaAdi, tutar)
	if err != nil {
		logger.Error("paytr token alınamadı", "error", err.Error())
		return apperrors.NewBusinessError("Ödeme sağlayıcısına ulaşılamadı, lütfen tekrar deneyin")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token":        resp.Token,
			"merchant_oid": merchantOid,
			"iframe_url":   "https://www.paytr.com/odeme/guvenli/" + resp.Token,
		},
	})
}

// PaytrCallback gateway bildirimi. İmza tutmazsa istek reddedilir; karar
// verilmiş kayıtlar için de "OK" döner, PayTR aynı bildirimi tekrarlar.
func (h *OdemeHandler) PaytrCallback(c *fiber.Ctx) error {
	merchantOid := c.FormValue("merchant_oid")
	status := c.FormValue("status")
	totalAmount := c.FormValue("total_amount")
	hash := c.FormValue("hash")

	if merchantOid == "" || hash == "" {
		return apperrors.NewValidationError([]string{"eksik callback parametresi"})
	}
	if !h.Paytr.ValidateCallback(merchantOid, status, totalAmount, hash) {
		logger.Warn("paytr callback imzası geçersiz", "merchant_oid", merchantOid)
		return apperrors.NewAuthenticationError("Geçersiz imza")
	}

	if err := h.Credit.CompletePaytrPayment(c.UserContext(), merchantOid, status == "success"); err != nil {
		return err
	}

	// PayTR düz metin "OK" bekler.
	return c.SendString("OK")
}
