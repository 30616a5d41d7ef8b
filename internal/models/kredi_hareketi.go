package models

import "time"

type HareketTuru string

const (
	HareketYukleme   HareketTuru = "yukleme"
	HareketSatinAlma HareketTuru = "satin_alma"
)

// KrediHareketi bakiye değiştiren her işlem için eklenen defter kaydı.
// Append-only: güncellenmez, silinmez.
type KrediHareketi struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BayiID uint `gorm:"index;not null" json:"bayi_id"`

	HareketTuru HareketTuru `gorm:"type:varchar(20);not null" json:"hareket_turu"`

	// Tüm tutarlar kuruş.
	Tutar        int64 `gorm:"not null" json:"tutar"`
	OncekiBakiye int64 `gorm:"not null" json:"onceki_bakiye"`
	YeniBakiye   int64 `gorm:"not null" json:"yeni_bakiye"`

	// ReferansID hareketi tetikleyen odeme_islemi veya is_talebi kaydı.
	ReferansID *uint  `gorm:"index" json:"referans_id,omitempty"`
	Aciklama   string `gorm:"type:varchar(200)" json:"aciklama"`

	CreatedAt time.Time `json:"created_at"`
}

func (KrediHareketi) TableName() string { return "kredi_hareketleri" }
