package mailer

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/emrekarsli/tvservis_backend/internal/db"
	"github.com/emrekarsli/tvservis_backend/internal/models"
	"github.com/emrekarsli/tvservis_backend/pkg/logger"
)

// Transport e-posta gönderimini soyutlar. Gönderim başarısızlığı asla
// hata fırlatmaz; iş mantığı bildirime bağlı değildir.
type Transport interface {
	SendEmail(to, subject, html, text string) bool
}

// LogTransport gerçek SMTP yerine loga yazar. Üretimde gerçek bir transport
// takılana kadar varsayılan budur.
type LogTransport struct{}

func (LogTransport) SendEmail(to, subject, html, text string) bool {
	logger.Info("e-posta gönderildi (log transport)", "to", to, "subject", subject)
	return true
}

type Mailer struct {
	db        *db.DB
	transport Transport
	from      string
}

func New(database *db.DB, transport Transport, from string) *Mailer {
	if transport == nil {
		transport = LogTransport{}
	}
	return &Mailer{db: database, transport: transport, from: from}
}

// Dispatch olayı şablona çevirip transport'a verir, sonucu bildirim kaydına
// işler. Her koşulda sadece bool döndürür.
func (m *Mailer) Dispatch(ctx context.Context, event Event, to string, data Data) bool {
	msg, ok := Render(event, data)
	if !ok {
		logger.Warn("bilinmeyen bildirim olayı", "event", string(event))
		return false
	}

	delivered := m.transport.SendEmail(to, msg.Subject, msg.HTML, msg.Text)
	if !delivered {
		logger.Warn("e-posta gönderilemedi", "event", string(event), "to", to)
	}

	payload, _ := json.Marshal(data)
	kayit := models.BildirimKaydi{
		Olay:     string(event),
		Alici:    to,
		Konu:     msg.Subject,
		Iletildi: delivered,
		Payload:  datatypes.JSON(payload),
	}
	if err := m.db.WithContext(ctx).Create(&kayit).Error; err != nil {
		logger.Error("bildirim kaydı yazılamadı", "error", err.Error())
	}

	return delivered
}
