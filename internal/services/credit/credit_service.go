package credit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
	"github.com/emrekarsli/tvservis_backend/internal/db"
	"github.com/emrekarsli/tvservis_backend/internal/models"
	"github.com/emrekarsli/tvservis_backend/internal/services/mailer"
)

// MaxTransferKurus havale bildirimi tavanı (10.000 TL).
const MaxTransferKurus int64 = 10_000 * 100

// Service bakiye değiştiren tüm operasyonların tek kapısıdır. Her karar
// koşullu UPDATE + RowsAffected kontrolü ile tek transaction içinde verilir;
// aynı kaydı yarıştıran ikinci istek BusinessError ile kaybeder.
type Service struct {
	db     *db.DB
	mailer *mailer.Mailer
}

func NewService(database *db.DB, m *mailer.Mailer) *Service {
	return &Service{db: database, mailer: m}
}

// ReportTransfer havale bildirimi açar. Bakiye burada değişmez; kayıt
// admin kararına kadar "beklemede" durur.
func (s *Service) ReportTransfer(ctx context.Context, bayiID uint, tutar int64, referansNo, aciklama, havaleTarihi string) (*models.OdemeIslemi, error) {
	var details []string
	if tutar <= 0 {
		details = append(details, "tutar pozitif olmalıdır")
	}
	if tutar > MaxTransferKurus {
		details = append(details, "tutar en fazla 10000 TL olabilir")
	}
	referansNo = strings.TrimSpace(referansNo)
	if referansNo == "" || len(referansNo) > 50 {
		details = append(details, "referans_no 1-50 karakter olmalıdır")
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError(details)
	}

	odeme := models.OdemeIslemi{
		BayiID:       bayiID,
		Tutar:        tutar,
		OdemeYontemi: models.OdemeBankaHavale,
		Durum:        models.OdemeBeklemede,
		ReferansNo:   referansNo,
		Aciklama:     aciklama,
		HavaleTarihi: havaleTarihi,
	}

	err := db.WithRetry(ctx, func() error {
		return s.db.WithContext(ctx).Create(&odeme).Error
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &odeme, nil
}

// ApproveTransfer bekleyen havaleyi onaylar: durum geçişi, bakiye artışı ve
// defter kaydı tek transaction'dır. Kararı verilmiş bir kaydı tekrar onaylamak
// BusinessError döndürür ve bakiyeye dokunmaz.
func (s *Service) ApproveTransfer(ctx context.Context, odemeID uint, adminNotu string) (*models.OdemeIslemi, error) {
	var odeme models.OdemeIslemi
	var bayi models.Bayi

	err := db.WithRetry(ctx, func() error {
		return s.db.Transaction(ctx, func(tx *gorm.DB) error {
			if err := tx.First(&odeme, odemeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewBusinessError("Ödeme kaydı bulunamadı")
				}
				return err
			}

			now := time.Now()
			res := tx.Model(&models.OdemeIslemi{}).
				Where("id = ? AND durum = ?", odemeID, models.OdemeBeklemede).
				Updates(map[string]any{
					"durum":       models.OdemeTamamlandi,
					"admin_notu":  adminNotu,
					"karar_tarih": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.NewBusinessError("Bu ödeme için karar zaten verilmiş")
			}

			if err := s.creditBayi(tx, &bayi, odeme.BayiID, odeme.Tutar, odeme.ID,
				fmt.Sprintf("Havale onayı (ref: %s)", odeme.ReferansNo)); err != nil {
				return err
			}

			odeme.Durum = models.OdemeTamamlandi
			odeme.AdminNotu = adminNotu
			odeme.KararTarih = &now
			return nil
		})
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	// Bildirim tutarlılık sınırının dışındadır; başarısızlığı işlemi geri almaz.
	if s.mailer != nil && bayi.Email != "" {
		s.mailer.Dispatch(ctx, mailer.EventPaymentApproved, bayi.Email, mailer.Data{
			"firma":  bayi.FirmaAdi,
			"tutar":  models.KurusToLiraStr(odeme.Tutar),
			"bakiye": models.KurusToLiraStr(bayi.KrediBakiye),
		})
	}
	return &odeme, nil
}

// RejectTransfer bekleyen havaleyi gerekçeyle reddeder; bakiye değişmez.
func (s *Service) RejectTransfer(ctx context.Context, odemeID uint, gerekce string) (*models.OdemeIslemi, error) {
	gerekce = strings.TrimSpace(gerekce)
	if gerekce == "" {
		return nil, apperrors.NewValidationError([]string{"ret gerekçesi zorunludur"})
	}

	var odeme models.OdemeIslemi
	var bayi models.Bayi

	err := db.WithRetry(ctx, func() error {
		return s.db.Transaction(ctx, func(tx *gorm.DB) error {
			if err := tx.First(&odeme, odemeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewBusinessError("Ödeme kaydı bulunamadı")
				}
				return err
			}

			now := time.Now()
			res := tx.Model(&models.OdemeIslemi{}).
				Where("id = ? AND durum = ?", odemeID, models.OdemeBeklemede).
				Updates(map[string]any{
					"durum":       models.OdemeIptalEdildi,
					"admin_notu":  gerekce,
					"karar_tarih": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.NewBusinessError("Bu ödeme için karar zaten verilmiş")
			}

			odeme.Durum = models.OdemeIptalEdildi
			odeme.AdminNotu = gerekce
			odeme.KararTarih = &now
			return tx.First(&bayi, odeme.BayiID).Error
		})
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	if s.mailer != nil && bayi.Email != "" {
		s.mailer.Dispatch(ctx, mailer.EventPaymentRejected, bayi.Email, mailer.Data{
			"firma":   bayi.FirmaAdi,
			"tutar":   models.KurusToLiraStr(odeme.Tutar),
			"gerekce": gerekce,
		})
	}
	return &odeme, nil
}

// PurchaseJob lead satın alma: talep en fazla bir kez satılır, bakiye yetersizse
// hiçbir değişiklik kalıcı olmaz. Satın alan bayi müşteri iletişim bilgilerini
// görür; diğerleri kısıtlı görünümde kalır (bkz. handlers).
func (s *Service) PurchaseJob(ctx context.Context, bayiID, talepID uint) (*models.IsTalebi, error) {
	var talep models.IsTalebi

	err := db.WithRetry(ctx, func() error {
		return s.db.Transaction(ctx, func(tx *gorm.DB) error {
			if err := tx.First(&talep, talepID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewBusinessError("Servis talebi bulunamadı")
				}
				return err
			}
			if talep.Satildi() {
				return apperrors.NewBusinessError("Bu talep başka bir bayi tarafından satın alınmış")
			}

			now := time.Now()
			res := tx.Model(&models.IsTalebi{}).
				Where("id = ? AND satin_alan_bayi_id IS NULL", talepID).
				Updates(map[string]any{
					"satin_alan_bayi_id": bayiID,
					"satin_alma_fiyati":  talep.IsFiyati,
					"satin_alma_tarihi":  now,
					"durum":              models.IsDurumAtandi,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.NewBusinessError("Bu talep başka bir bayi tarafından satın alınmış")
			}

			if err := s.debitBayi(tx, bayiID, talep.IsFiyati, talep.ID,
				fmt.Sprintf("Lead satın alma (#%d %s)", talep.ID, talep.Kategori)); err != nil {
				return err
			}

			talep.SatinAlanBayiID = &bayiID
			talep.SatinAlmaFiyati = &talep.IsFiyati
			talep.SatinAlmaTarihi = &now
			talep.Durum = models.IsDurumAtandi
			return nil
		})
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &talep, nil
}

// CompletePaytrPayment kart ödemesi bildirimini işler. Kararı verilmiş bir
// kayıt için nil döner; gateway tekrarlayan bildirimlerde "OK" bekler.
func (s *Service) CompletePaytrPayment(ctx context.Context, merchantOid string, success bool) error {
	var odeme models.OdemeIslemi
	var bayi models.Bayi
	credited := false

	err := db.WithRetry(ctx, func() error {
		return s.db.Transaction(ctx, func(tx *gorm.DB) error {
			err := tx.Where("referans_no = ? AND odeme_yontemi = ?", merchantOid, models.OdemePaytr).
				First(&odeme).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewBusinessError("Ödeme kaydı bulunamadı")
				}
				return err
			}
			if odeme.Durum != models.OdemeBeklemede {
				return nil // zaten karar verilmiş, tekrar kredilendirme yok
			}

			durum := models.OdemeIptalEdildi
			if success {
				durum = models.OdemeTamamlandi
			}

			now := time.Now()
			res := tx.Model(&models.OdemeIslemi{}).
				Where("id = ? AND durum = ?", odeme.ID, models.OdemeBeklemede).
				Updates(map[string]any{"durum": durum, "karar_tarih": now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil // yarışı kaybettik, diğer istek kararı verdi
			}

			if success {
				if err := s.creditBayi(tx, &bayi, odeme.BayiID, odeme.Tutar, odeme.ID,
					fmt.Sprintf("PayTR ödemesi (oid: %s)", merchantOid)); err != nil {
					return err
				}
				credited = true
			}
			return nil
		})
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return err
		}
		return apperrors.NewDatabaseError(err)
	}

	if credited && s.mailer != nil && bayi.Email != "" {
		s.mailer.Dispatch(ctx, mailer.EventCreditLoaded, bayi.Email, mailer.Data{
			"firma":  bayi.FirmaAdi,
			"tutar":  models.KurusToLiraStr(odeme.Tutar),
			"bakiye": models.KurusToLiraStr(bayi.KrediBakiye),
		})
	}
	return nil
}

// GetCreditHistory defter kayıtları, en yeniden eskiye.
func (s *Service) GetCreditHistory(ctx context.Context, bayiID uint, limit int) ([]models.KrediHareketi, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var hareketler []models.KrediHareketi
	err := s.db.WithContext(ctx).
		Where("bayi_id = ?", bayiID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&hareketler).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return hareketler, nil
}

// creditBayi bakiyeyi artırır ve defter kaydını ekler. Transaction içinde
// çağrılmalıdır; bayi parametresi güncel bakiye ile doldurulur.
func (s *Service) creditBayi(tx *gorm.DB, bayi *models.Bayi, bayiID uint, tutar int64, referansID uint, aciklama string) error {
	res := tx.Model(&models.Bayi{}).
		Where("id = ?", bayiID).
		Update("kredi_bakiye", gorm.Expr("kredi_bakiye + ?", tutar))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NewBusinessError("Bayi bulunamadı")
	}

	if err := tx.First(bayi, bayiID).Error; err != nil {
		return err
	}

	hareket := models.KrediHareketi{
		BayiID:       bayiID,
		HareketTuru:  models.HareketYukleme,
		Tutar:        tutar,
		OncekiBakiye: bayi.KrediBakiye - tutar,
		YeniBakiye:   bayi.KrediBakiye,
		ReferansID:   &referansID,
		Aciklama:     aciklama,
	}
	return tx.Create(&hareket).Error
}

// debitBayi bakiyeyi koşullu düşer; yetersiz bakiye transaction'ı geri aldırır.
func (s *Service) debitBayi(tx *gorm.DB, bayiID uint, tutar int64, referansID uint, aciklama string) error {
	res := tx.Model(&models.Bayi{}).
		Where("id = ? AND kredi_bakiye >= ?", bayiID, tutar).
		Update("kredi_bakiye", gorm.Expr("kredi_bakiye - ?", tutar))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NewBusinessError("Yetersiz kredi bakiyesi")
	}

	var bayi models.Bayi
	if err := tx.First(&bayi, bayiID).Error; err != nil {
		return err
	}

	hareket := models.KrediHareketi{
		BayiID:       bayiID,
		HareketTuru:  models.HareketSatinAlma,
		Tutar:        tutar,
		OncekiBakiye: bayi.KrediBakiye + tutar,
		YeniBakiye:   bayi.KrediBakiye,
		ReferansID:   &referansID,
		Aciklama:     aciklama,
	}
	return tx.Create(&hareket).Error
}
