package validation

import (
	"fmt"
	"regexp"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BayiLoginRules bayi girişi.
func BayiLoginRules() []Rule {
	return []Rule{
		{Field: "email", Required: true, Type: TypeEmail},
		{Field: "password", Required: true, Type: TypeString, MinLength: 6},
	}
}

// AdminLoginRules yönetici girişi.
func AdminLoginRules() []Rule {
	return []Rule{
		{Field: "kullanici_adi", Required: true, Type: TypeString, MinLength: 3, MaxLength: 50},
		{Field: "password", Required: true, Type: TypeString, MinLength: 6},
	}
}

// HavaleBildirimRules bayi havale bildirimi. Tutar TL cinsindendir; tavan 10000 TL.
func HavaleBildirimRules() []Rule {
	return []Rule{
		{Field: "tutar", Required: true, Type: TypeAmount, Min: Num(1), Max: Num(10000)},
		{Field: "referans_no", Required: true, Type: TypeString, MinLength: 5, MaxLength: 50},
		{Field: "aciklama", Required: false, Type: TypeString, MaxLength: 200},
		{Field: "havale_tarihi", Required: true, Type: TypeString, Pattern: dateRe},
	}
}

// OdemeKararRules admin onay/ret aksiyonu.
func OdemeKararRules() []Rule {
	return []Rule{
		{Field: "islem", Required: true, Type: TypeString, Custom: func(v any) (bool, string) {
			s, _ := v.(string)
			if s == "approve" || s == "reject" {
				return true, ""
			}
			return false, fmt.Sprintf("islem approve veya reject olmalıdır, %q geçersiz", s)
		}},
		{Field: "not", Required: false, Type: TypeString, MaxLength: 500},
	}
}

// TalepRules müşteri servis talebi formu.
func TalepRules() []Rule {
	return []Rule{
		{Field: "musteri_adi", Required: true, Type: TypeString, MinLength: 2, MaxLength: 100},
		{Field: "musteri_telefon", Required: true, Type: TypePhone},
		{Field: "musteri_email", Required: false, Type: TypeEmail},
		{Field: "kategori", Required: true, Type: TypeString, MinLength: 2, MaxLength: 80},
		{Field: "aciklama", Required: false, Type: TypeString, MaxLength: 1000},
		{Field: "musteri_adres", Required: false, Type: TypeString, MaxLength: 300},
	}
}
