package models

import "time"

type IsDurumu string

const (
	IsDurumYeni        IsDurumu = "yeni"
	IsDurumAtandi      IsDurumu = "atandi"
	IsDurumDevamEdiyor IsDurumu = "devam_ediyor"
	IsDurumTamamlandi  IsDurumu = "tamamlandi"
)

type IsOnceligi string

const (
	OncelikDusuk  IsOnceligi = "dusuk"
	OncelikNormal IsOnceligi = "normal"
	OncelikYuksek IsOnceligi = "yuksek"
)

// IsTalebi müşteriden gelen servis talebi. Satın alınana kadar iletişim
// bilgileri bayilere kapalıdır.
type IsTalebi struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MusteriAdi     string `gorm:"type:varchar(100);not null" json:"musteri_adi"`
	MusteriTelefon string `gorm:"type:varchar(30);not null" json:"musteri_telefon"`
	MusteriEmail   string `gorm:"type:varchar(150)" json:"musteri_email"`
	MusteriAdres   string `gorm:"type:text" json:"musteri_adres"`
	IlID           uint   `gorm:"index" json:"il_id"`

	Kategori string `gorm:"type:varchar(80);not null;index" json:"kategori"`
	Aciklama string `gorm:"type:text" json:"aciklama"`

	Durum   IsDurumu   `gorm:"type:varchar(20);default:'yeni';index" json:"durum"`
	Oncelik IsOnceligi `gorm:"type:varchar(20);default:'normal'" json:"oncelik"`

	// IsFiyati lead bedeli, kuruş.
	IsFiyati int64 `gorm:"not null" json:"is_fiyati"`

	SatinAlanBayiID *uint      `gorm:"index" json:"satin_alan_bayi_id,omitempty"`
	SatinAlmaFiyati *int64     `json:"satin_alma_fiyati,omitempty"`
	SatinAlmaTarihi *time.Time `json:"satin_alma_tarihi,omitempty"`

	SatinAlanBayi *Bayi `gorm:"foreignKey:SatinAlanBayiID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IsTalebi) TableName() string { return "is_talepleri" }

// Satildi reports whether the lead already has a purchaser.
func (t *IsTalebi) Satildi() bool {
	return t.SatinAlanBayiID != nil
}
