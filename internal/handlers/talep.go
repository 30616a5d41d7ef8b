package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
	"github.com/emrekarsli/tvservis_backend/internal/db"
	"github.com/emrekarsli/tvservis_backend/internal/middleware"
	"github.com/emrekarsli/tvservis_backend/internal/models"
	"github.com/emrekarsli/tvservis_backend/internal/services/credit"
	"github.com/emrekarsli/tvservis_backend/internal/services/mailer"
	"github.com/emrekarsli/tvservis_backend/internal/validation"
)

type TalepHandler struct {
	DB     *db.DB
	Credit *credit.Service
	Mailer *mailer.Mailer
}

func NewTalepHandler(database *db.DB, creditSvc *credit.Service, m *mailer.Mailer) *TalepHandler {
	return &TalepHandler{DB: database, Credit: creditSvc, Mailer: m}
}

// varsayılan lead bedeli, kuruş. Kategoriye göre fiyatlama admin tarafında
// yapılana kadar sabit.
const varsayilanLeadBedeli int64 = 150 * 100

// Create müşteri servis talebi formu (public, rate limitli).
func (h *TalepHandler) Create(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	fields, err := validation.Validate(body, validation.TalepRules())
	if err != nil {
		return err
	}

	talep := models.IsTalebi{
		MusteriAdi:     str(fields, "musteri_adi"),
		MusteriTelefon: str(fields, "musteri_telefon"),
		MusteriEmail:   str(fields, "musteri_email"),
		MusteriAdres:   str(fields, "musteri_adres"),
		Kategori:       str(fields, "kategori"),
		Aciklama:       str(fields, "aciklama"),
		Durum:          models.IsDurumYeni,
		Oncelik:        models.OncelikNormal,
		IsFiyati:       varsayilanLeadBedeli,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&talep).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}

	go h.yeniTalepBildir(&talep)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Talebiniz alındı, en kısa sürede dönüş yapılacaktır",
		"data":    fiber.Map{"talep_no": talep.ID},
	})
}

// List bayilere açık liste. Satın alınmamış talepler kısıtlı görünümdedir:
// ad/kategori/fiyat dışındaki müşteri alanları gizli kalır.
func (h *TalepHandler) List(c *fiber.Ctx) error {
	bayiID := middleware.BayiID(c)

	var talepler []models.IsTalebi
	q := h.DB.WithContext(c.UserContext()).Order("created_at DESC").Limit(100)
	if durum := c.Query("durum"); durum != "" {
		q = q.Where("durum = ?", durum)
	}
	if err := q.Find(&talepler).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}

	out := make([]fiber.Map, 0, len(talepler))
	for i := range talepler {
		out = append(out, talepView(&talepler[i], bayiID))
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

// Detail satın alan bayi tam görünümü alır, diğerleri kısıtlı görünümü.
func (h *TalepHandler) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError([]string{"talep id geçersiz"})
	}

	var talep models.IsTalebi
	if err := h.DB.WithContext(c.UserContext()).First(&talep, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewBusinessError("Servis talebi bulunamadı")
		}
		return apperrors.NewDatabaseError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": talepView(&talep, middleware.BayiID(c))})
}

// Purchase lead satın alma. Yarış ve bakiye kontrolleri credit servisinde.
func (h *TalepHandler) Purchase(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError([]string{"talep id geçersiz"})
	}

	talep, err := h.Credit.PurchaseJob(c.UserContext(), middleware.BayiID(c), uint(id))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Talep satın alındı",
		"data":    talepView(talep, middleware.BayiID(c)),
	})
}

// UpdateStatus satın alan bayi işin durumunu ilerletir.
func (h *TalepHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError([]string{"talep id geçersiz"})
	}

	var req struct {
		Durum string `json:"durum"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError([]string{"istek gövdesi geçersiz"})
	}

	durum := models.IsDurumu(req.Durum)
	switch durum {
	case models.IsDurumDevamEdiyor, models.IsDurumTamamlandi:
	default:
		return apperrors.NewValidationError([]string{"durum devam_ediyor veya tamamlandi olmalıdır"})
	}

	bayiID := middleware.BayiID(c)
	// durum <> ? koşulu aynı durumun tekrar gönderilmesini (ve sayaç
	// çiftlenmesini) engeller.
	res := h.DB.WithContext(c.UserContext()).
		Model(&models.IsTalebi{}).
		Where("id = ? AND satin_alan_bayi_id = ? AND durum <> ?", id, bayiID, durum).
		Update("durum", durum)
	if res.Error != nil {
		return apperrors.NewDatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewBusinessError("Bu talep üzerinde işlem yetkiniz yok veya durum zaten güncel")
	}

	if durum == models.IsDurumTamamlandi {
		h.DB.WithContext(c.UserContext()).
			Model(&models.Bayi{}).
			Where("id = ?", bayiID).
			Update("tamamlanan_is_sayisi", gorm.Expr("tamamlanan_is_sayisi + 1"))
	}

	return c.JSON(fiber.Map{"success": true, "message": "Durum güncellendi"})
}

// talepView kısıtlı/tam görünüm kararını verir: iletişim alanlarını yalnızca
// satın alan bayi görür.
func talepView(t *models.IsTalebi, bayiID uint) fiber.Map {
	view := fiber.Map{
		"id":          t.ID,
		"musteri_adi": t.MusteriAdi,
		"kategori":    t.Kategori,
		"durum":       t.Durum,
		"oncelik":     t.Oncelik,
		"is_fiyati":   models.KurusToLira(t.IsFiyati),
		"il_id":       t.IlID,
		"created_at":  t.CreatedAt,
		"satildi":     t.Satildi(),
	}

	if t.SatinAlanBayiID != nil && *t.SatinAlanBayiID == bayiID {
		view["musteri_telefon"] = t.MusteriTelefon
		view["musteri_email"] = t.MusteriEmail
		view["musteri_adres"] = t.MusteriAdres
		view["aciklama"] = t.Aciklama
		view["satin_alma_tarihi"] = t.SatinAlmaTarihi
		if t.SatinAlmaFiyati != nil {
			view["satin_alma_fiyati"] = models.KurusToLira(*t.SatinAlmaFiyati)
		}
	}
	return view
}

// yeniTalepBildir aktif bayilere yeni talebi duyurur. İstek context'inden
// bağımsız çalışır; gönderim başarısızlığı talep kaydını etkilemez.
func (h *TalepHandler) yeniTalepBildir(talep *models.IsTalebi) {
	if h.Mailer == nil {
		return
	}

	ctx := context.Background()
	var bayiler []models.Bayi
	if err := h.DB.WithContext(ctx).
		Where("aktif = ?", true).Limit(20).Find(&bayiler).Error; err != nil {
		return
	}

	for i := range bayiler {
		h.Mailer.Dispatch(ctx, mailer.EventNewJob, bayiler[i].Email, mailer.Data{
			"kategori": talep.Kategori,
			"fiyat":    models.KurusToLiraStr(talep.IsFiyati),
		})
	}
}

func str(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
