package models

import "time"

// BayiOturumu sunucu tarafı oturum kaydı. Bayi JWT'si imza + süre kontrolüne ek
// olarak burada aktif bir satır bulunmasını şart koşar; logout satırı pasifler.
type BayiOturumu struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BayiID uint `gorm:"index;not null" json:"bayi_id"`

	TokenHash string    `gorm:"type:char(64);uniqueIndex;not null" json:"-"`
	Aktif     bool      `gorm:"default:true;index" json:"aktif"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (BayiOturumu) TableName() string { return "bayi_oturumlari" }

func (o *BayiOturumu) Gecerli(now time.Time) bool {
	return o.Aktif && now.Before(o.ExpiresAt)
}
