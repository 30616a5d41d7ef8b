package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/emrekarsli/tvservis_backend/internal/db"
	"github.com/emrekarsli/tvservis_backend/internal/models"
)

type fakeTransport struct {
	sent []string
	ok   bool
}

func (f *fakeTransport) SendEmail(to, subject, html, text string) bool {
	f.sent = append(f.sent, to)
	return f.ok
}

func setupTestDB(t *testing.T) *db.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	d := &db.DB{DB: gdb}
	require.NoError(t, d.Migrate())
	return d
}

func TestRenderTemplates(t *testing.T) {
	msg, ok := Render(EventPaymentApproved, Data{"firma": "Örnek Elektronik", "tutar": "300.00", "bakiye": "700.00"})
	require.True(t, ok)
	assert.Equal(t, "Ödemeniz onaylandı", msg.Subject)
	assert.Contains(t, msg.HTML, "Örnek Elektronik")
	assert.Contains(t, msg.HTML, "700.00")
	assert.Contains(t, msg.Text, "300.00")

	msg, ok = Render(EventPaymentRejected, Data{"firma": "X", "tutar": "50.00", "gerekce": "dekont okunamadı"})
	require.True(t, ok)
	assert.Contains(t, msg.Text, "dekont okunamadı")

	_, ok = Render(Event("bilinmeyen_olay"), nil)
	assert.False(t, ok)
}

func TestDispatchRecordsDelivery(t *testing.T) {
	d := setupTestDB(t)
	tr := &fakeTransport{ok: true}
	m := New(d, tr, "destek@tvservis.local")

	ok := m.Dispatch(context.Background(), EventCreditLoaded, "bayi@ornek.com",
		Data{"firma": "Örnek", "tutar": "100.00", "bakiye": "100.00"})
	assert.True(t, ok)
	assert.Equal(t, []string{"bayi@ornek.com"}, tr.sent)

	var kayit models.BildirimKaydi
	require.NoError(t, d.First(&kayit).Error)
	assert.Equal(t, string(EventCreditLoaded), kayit.Olay)
	assert.Equal(t, "bayi@ornek.com", kayit.Alici)
	assert.True(t, kayit.Iletildi)
}

func TestDispatchFailureIsReportedNotRaised(t *testing.T) {
	d := setupTestDB(t)
	tr := &fakeTransport{ok: false}
	m := New(d, tr, "destek@tvservis.local")

	ok := m.Dispatch(context.Background(), EventSystemAlert, "admin@ornek.com",
		Data{"baslik": "disk", "detay": "disk doluyor"})
	assert.False(t, ok)

	var kayit models.BildirimKaydi
	require.NoError(t, d.First(&kayit).Error)
	assert.False(t, kayit.Iletildi)
}

func TestDispatchUnknownEvent(t *testing.T) {
	d := setupTestDB(t)
	m := New(d, &fakeTransport{ok: true}, "destek@tvservis.local")

	assert.False(t, m.Dispatch(context.Background(), Event("yok_boyle_olay"), "x@y.z", nil))

	var sayi int64
	d.Model(&models.BildirimKaydi{}).Count(&sayi)
	assert.Zero(t, sayi)
}
