package mailer

import "fmt"

type Event string

const (
	EventPaymentApproved Event = "payment_approved"
	EventPaymentRejected Event = "payment_rejected"
	EventCreditLoaded    Event = "credit_loaded"
	EventNewJob          Event = "new_job"
	EventSystemAlert     Event = "system_alert"
)

type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Data şablonlara geçen serbest alanlar (tutar TL string'i, firma adı vs).
type Data map[string]string

var templates = map[Event]func(d Data) Message{
	EventPaymentApproved: func(d Data) Message {
		return Message{
			Subject: "Ödemeniz onaylandı",
			HTML: fmt.Sprintf(
				"<h2>Ödeme Onayı</h2><p>Sayın %s,</p><p>%s TL tutarındaki havale bildiriminiz onaylandı. Yeni bakiyeniz: <b>%s TL</b></p>",
				d["firma"], d["tutar"], d["bakiye"]),
			Text: fmt.Sprintf("Sayın %s, %s TL tutarındaki havale bildiriminiz onaylandı. Yeni bakiyeniz: %s TL",
				d["firma"], d["tutar"], d["bakiye"]),
		}
	},
	EventPaymentRejected: func(d Data) Message {
		return Message{
			Subject: "Ödeme bildiriminiz reddedildi",
			HTML: fmt.Sprintf(
				"<h2>Ödeme Reddi</h2><p>Sayın %s,</p><p>%s TL tutarındaki havale bildiriminiz reddedildi.</p><p>Gerekçe: %s</p>",
				d["firma"], d["tutar"], d["gerekce"]),
			Text: fmt.Sprintf("Sayın %s, %s TL tutarındaki havale bildiriminiz reddedildi. Gerekçe: %s",
				d["firma"], d["tutar"], d["gerekce"]),
		}
	},
	EventCreditLoaded: func(d Data) Message {
		return Message{
			Subject: "Kredi yüklemesi tamamlandı",
			HTML: fmt.Sprintf(
				"<h2>Kredi Yükleme</h2><p>Sayın %s,</p><p>Hesabınıza %s TL kredi yüklendi. Güncel bakiye: <b>%s TL</b></p>",
				d["firma"], d["tutar"], d["bakiye"]),
			Text: fmt.Sprintf("Sayın %s, hesabınıza %s TL kredi yüklendi. Güncel bakiye: %s TL",
				d["firma"], d["tutar"], d["bakiye"]),
		}
	},
	EventNewJob: func(d Data) Message {
		return Message{
			Subject: "Bölgenizde yeni servis talebi",
			HTML: fmt.Sprintf(
				"<h2>Yeni Talep</h2><p>%s kategorisinde yeni bir servis talebi oluşturuldu. Lead bedeli: %s TL</p>",
				d["kategori"], d["fiyat"]),
			Text: fmt.Sprintf("%s kategorisinde yeni servis talebi. Lead bedeli: %s TL",
				d["kategori"], d["fiyat"]),
		}
	},
	EventSystemAlert: func(d Data) Message {
		return Message{
			Subject: "Sistem uyarısı: " + d["baslik"],
			HTML:    fmt.Sprintf("<h2>Sistem Uyarısı</h2><p>%s</p>", d["detay"]),
			Text:    d["detay"],
		}
	},
}

// Render olay etiketini şablona çevirir. Bilinmeyen olaylar için boş mesaj
// ve false döner.
func Render(event Event, d Data) (Message, bool) {
	fn, ok := templates[event]
	if !ok {
		return Message{}, false
	}
	return fn(d), true
}
