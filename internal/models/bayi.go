package models

import "time"

// Bayi satıs ortağı (servis bayisi). Kayıtlar silinmez, aktif flag'i ile kapatılır.
type Bayi struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	FirmaAdi string `gorm:"type:varchar(150);not null" json:"firma_adi"`
	Telefon  string `gorm:"type:varchar(30)" json:"telefon"`
	IlID     uint   `gorm:"index" json:"il_id"`
	Ilce     string `gorm:"type:varchar(100)" json:"ilce"`

	// KrediBakiye kuruş cinsinden tutulur. TL değerler sadece API sınırında kullanılır.
	KrediBakiye int64 `gorm:"not null;default:0" json:"kredi_bakiye"`

	Aktif      bool `gorm:"default:true;index" json:"aktif"`
	AktifLogin bool `gorm:"default:true" json:"aktif_login"`

	Rating             float64 `gorm:"default:0" json:"rating"`
	TamamlananIsSayisi int     `gorm:"default:0" json:"tamamlanan_is_sayisi"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Bayi) TableName() string { return "bayiler" }
