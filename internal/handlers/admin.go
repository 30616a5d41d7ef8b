package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
	"github.com/emrekarsli/tvservis_backend/internal/auth"
	"github.com/emrekarsli/tvservis_backend/internal/db"
	"github.com/emrekarsli/tvservis_backend/internal/models"
	"github.com/emrekarsli/tvservis_backend/internal/services/credit"
	"github.com/emrekarsli/tvservis_backend/internal/validation"
)

type AdminHandler struct {
	DB        *db.DB
	Credit    *credit.Service
	JWTSecret string
}

func NewAdminHandler(database *db.DB, creditSvc *credit.Service, jwtSecret string) *AdminHandler {
	return &AdminHandler{DB: database, Credit: creditSvc, JWTSecret: jwtSecret}
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	fields, err := validation.Validate(body, validation.AdminLoginRules())
	if err != nil {
		return err
	}

	kullaniciAdi := str(fields, "kullanici_adi")
	password := str(fields, "password")

	var admin models.AdminKullanici
	if err := h.DB.WithContext(c.UserContext()).
		Where("kullanici_adi = ? AND aktif = ?", kullaniciAdi, true).
		First(&admin).Error; err != nil {
		return apperrors.NewAuthenticationError("Kullanıcı adı veya parola hatalı")
	}
	if !auth.CheckPassword(admin.PasswordHash, password) {
		return apperrors.NewAuthenticationError("Kullanıcı adı veya parola hatalı")
	}

	token, err := auth.SignAdminToken(h.JWTSecret, &admin)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token": token,
			"admin": fiber.Map{
				"id":             admin.ID,
				"kullanici_adi":  admin.KullaniciAdi,
				"yetki_seviyesi": admin.YetkiSeviyesi,
			},
		},
	})
}

// Dashboard panelin özet sayıları.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	type sayilar struct {
		ToplamBayi    int64
		AktifBayi     int64
		ToplamTalep   int64
		AcikTalep     int64
		BekleyenOdeme int64
		BekleyenTutar int64
		BugunTalep    int64
		ToplamHareket int64
	}
	var s sayilar

	gdb := h.DB.WithContext(ctx)
	gdb.Model(&models.Bayi{}).Count(&s.ToplamBayi)
	gdb.Model(&models.Bayi{}).Where("aktif = ?", true).Count(&s.AktifBayi)
	gdb.Model(&models.IsTalebi{}).Count(&s.ToplamTalep)
	gdb.Model(&models.IsTalebi{}).Where("satin_alan_bayi_id IS NULL").Count(&s.AcikTalep)
	gdb.Model(&models.OdemeIslemi{}).Where("durum = ?", models.OdemeBeklemede).Count(&s.BekleyenOdeme)
	gdb.Model(&models.OdemeIslemi{}).Where("durum = ?", models.OdemeBeklemede).
		Select("COALESCE(SUM(tutar), 0)").Scan(&s.BekleyenTutar)
	gdb.Model(&models.IsTalebi{}).Where("created_at >= date('now')").Count(&s.BugunTalep)
	gdb.Model(&models.KrediHareketi{}).Count(&s.ToplamHareket)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"toplam_bayi":           s.ToplamBayi,
			"aktif_bayi":            s.AktifBayi,
			"toplam_talep":          s.ToplamTalep,
			"acik_talep":            s.AcikTalep,
			"bekleyen_odeme":        s.BekleyenOdeme,
			"bekleyen_odeme_tutar":  models.KurusToLira(s.BekleyenTutar),
			"bugun_talep":           s.BugunTalep,
			"toplam_kredi_hareketi": s.ToplamHareket,
		},
	})
}

// BekleyenOdemeler sayfalı bekleyen havale listesi.
func (h *AdminHandler) BekleyenOdemeler(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	type satir struct {
		ID           uint   `json:"id"`
		BayiID       uint   `json:"bayi_id"`
		FirmaAdi     string `json:"firma_adi"`
		Tutar        int64  `json:"-"`
		ReferansNo   string `json:"referans_no"`
		Aciklama     string `json:"aciklama"`
		HavaleTarihi string `json:"havale_tarihi"`
		CreatedAt    string `json:"created_at"`
	}
	var rows []satir

	total, err := h.DB.QueryPage(c.UserContext(), &rows, page, perPage, `
		SELECT o.id, o.bayi_id, b.firma_adi, o.tutar, o.referans_no, o.aciklama,
		       o.havale_tarihi, o.created_at
		FROM odeme_islemleri o
		JOIN bayiler b ON b.id = o.bayi_id
		WHERE o.durum = ?
		ORDER BY o.created_at ASC`, models.OdemeBeklemede)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{
			"id":            r.ID,
			"bayi_id":       r.BayiID,
			"firma_adi":     r.FirmaAdi,
			"tutar":         models.KurusToLira(r.Tutar),
			"referans_no":   r.ReferansNo,
			"aciklama":      r.Aciklama,
			"havale_tarihi": r.HavaleTarihi,
			"created_at":    r.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
		"meta":    fiber.Map{"page": page, "per_page": perPage, "total": total},
	})
}

// OdemeKarar approve|reject aksiyonunu uygular. Çifte karar credit servisinde
// BusinessError ile reddedilir.
func (h *AdminHandler) OdemeKarar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError([]string{"ödeme id geçersiz"})
	}

	body, err := parseBody(c)
	if err != nil {
		return err
	}
	fields, err := validation.Validate(body, validation.OdemeKararRules())
	if err != nil {
		return err
	}

	islem := str(fields, "islem")
	not := str(fields, "not")

	var odeme *models.OdemeIslemi
	if islem == "approve" {
		odeme, err = h.Credit.ApproveTransfer(c.UserContext(), uint(id), not)
	} else {
		if not == "" {
			return apperrors.NewValidationError([]string{"ret işlemi için not (gerekçe) zorunludur"})
		}
		odeme, err = h.Credit.RejectTransfer(c.UserContext(), uint(id), not)
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Karar uygulandı",
		"data": fiber.Map{
			"id":    odeme.ID,
			"durum": odeme.Durum,
			"tutar": models.KurusToLira(odeme.Tutar),
		},
	})
}
