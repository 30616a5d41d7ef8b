package models

import "time"

// AdminKullanici yönetim paneli kullanıcısı. Parolalar bcrypt ile saklanır.
type AdminKullanici struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KullaniciAdi string `gorm:"uniqueIndex;type:varchar(50);not null" json:"kullanici_adi"`
	PasswordHash string `gorm:"not null" json:"-"`

	YetkiSeviyesi int  `gorm:"default:1" json:"yetki_seviyesi"`
	Aktif         bool `gorm:"default:true" json:"aktif"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdminKullanici) TableName() string { return "admin_kullanicilari" }
