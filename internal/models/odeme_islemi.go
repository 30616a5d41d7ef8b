package models

import "time"

type OdemeYontemi string

const (
	OdemeKrediKarti  OdemeYontemi = "kredi_karti"
	OdemeBankaHavale OdemeYontemi = "banka_havale"
	OdemePaytr       OdemeYontemi = "paytr"
)

type OdemeDurumu string

const (
	OdemeBeklemede   OdemeDurumu = "beklemede"
	OdemeTamamlandi  OdemeDurumu = "tamamlandi"
	OdemeIptalEdildi OdemeDurumu = "iptal_edildi"
)

// OdemeIslemi havale bildirimi veya kart ödemesi. Durum beklemede → tamamlandi
// ya da beklemede → iptal_edildi yönünde tam bir kez değişir; sonrası immutable.
type OdemeIslemi struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	BayiID uint  `gorm:"index;not null" json:"bayi_id"`
	Bayi   *Bayi `gorm:"foreignKey:BayiID" json:"-"`

	// Tutar kuruş cinsinden.
	Tutar        int64        `gorm:"not null" json:"tutar"`
	OdemeYontemi OdemeYontemi `gorm:"type:varchar(20);not null" json:"odeme_yontemi"`
	Durum        OdemeDurumu  `gorm:"type:varchar(20);default:'beklemede';index" json:"durum"`

	ReferansNo string `gorm:"type:varchar(50);index" json:"referans_no"`
	Aciklama   string `gorm:"type:varchar(200)" json:"aciklama"`

	HavaleTarihi string `gorm:"type:varchar(20)" json:"havale_tarihi"`

	AdminNotu  string     `gorm:"type:varchar(500)" json:"admin_notu"`
	KararTarih *time.Time `json:"karar_tarihi,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OdemeIslemi) TableName() string { return "odeme_islemleri" }
