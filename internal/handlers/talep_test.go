package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emrekarsli/tvservis_backend/internal/models"
)

func ornekTalep(satinAlan *uint) *models.IsTalebi {
	fiyat := int64(300 * 100)
	now := time.Now()
	t := &models.IsTalebi{
		ID:             7,
		MusteriAdi:     "Ayşe Yılmaz",
		MusteriTelefon: "05321234567",
		MusteriEmail:   "ayse@ornek.com",
		MusteriAdres:   "Atatürk Cad. No:12",
		Kategori:       "TV Tamiri",
		Aciklama:       "Ekran görüntü vermiyor",
		Durum:          models.IsDurumYeni,
		IsFiyati:       fiyat,
	}
	if satinAlan != nil {
		t.SatinAlanBayiID = satinAlan
		t.SatinAlmaFiyati = &fiyat
		t.SatinAlmaTarihi = &now
		t.Durum = models.IsDurumAtandi
	}
	return t
}

func TestTalepViewRedactsUnsoldLead(t *testing.T) {
	view := talepView(ornekTalep(nil), 5)

	assert.Equal(t, "Ayşe Yılmaz", view["musteri_adi"])
	assert.Equal(t, "TV Tamiri", view["kategori"])
	assert.Equal(t, false, view["satildi"])

	// İletişim alanları satın alınmadan görünmez.
	assert.NotContains(t, view, "musteri_telefon")
	assert.NotContains(t, view, "musteri_email")
	assert.NotContains(t, view, "musteri_adres")
	assert.NotContains(t, view, "aciklama")
}

func TestTalepViewRedactsForOtherDealers(t *testing.T) {
	sahip := uint(5)
	view := talepView(ornekTalep(&sahip), 9)

	assert.Equal(t, true, view["satildi"])
	assert.NotContains(t, view, "musteri_telefon")
	assert.NotContains(t, view, "musteri_adres")
}

func TestTalepViewFullForPurchaser(t *testing.T) {
	sahip := uint(5)
	view := talepView(ornekTalep(&sahip), 5)

	assert.Equal(t, "05321234567", view["musteri_telefon"])
	assert.Equal(t, "ayse@ornek.com", view["musteri_email"])
	assert.Equal(t, "Atatürk Cad. No:12", view["musteri_adres"])
	assert.Equal(t, "Ekran görüntü vermiyor", view["aciklama"])
	assert.Equal(t, 300.0, view["satin_alma_fiyati"])
}
