package models

import (
	"time"

	"gorm.io/datatypes"
)

// BildirimKaydi gönderilen (veya gönderilemeyen) her e-posta için tutulan iz.
type BildirimKaydi struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Olay     string `gorm:"type:varchar(50);index;not null" json:"olay"`
	Alici    string `gorm:"type:varchar(150);not null" json:"alici"`
	Konu     string `gorm:"type:varchar(200)" json:"konu"`
	Iletildi bool   `gorm:"default:false" json:"iletildi"`

	Payload datatypes.JSON `json:"payload,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (BildirimKaydi) TableName() string { return "bildirim_kayitlari" }
