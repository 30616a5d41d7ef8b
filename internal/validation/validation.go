package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
)

type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeEmail  FieldType = "email"
	TypePhone  FieldType = "phone"
	TypeAmount FieldType = "amount"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^(\+90|0)?\s?\d{10}$`)
	// HTML açısından anlamlı karakterler iş mantığına ulaşmadan temizlenir.
	sanitizeRe = regexp.MustCompile(`[<>"'&]`)
)

type Rule struct {
	Field    string
	Required bool
	Type     FieldType

	MinLength int
	MaxLength int
	Min       *float64
	Max       *float64
	Pattern   *regexp.Regexp
	// Custom son aşamada çalışır; mesajı kendisi üretir.
	Custom func(value any) (bool, string)
}

func Num(v float64) *float64 { return &v }

// Validate kuralları sırayla uygular: required kontrolü alan bazında kısa devre
// yapar, tip kontrolü ikinci sırada çalışır, pattern ve custom kontroller
// birikimlidir. Herhangi bir ihlalde istek bütün mesajlarla reddedilir;
// yan etki uygulanmaz. Başarılı string alanlar temizlenmiş, sayısal alanlar
// float64'e çevrilmiş olarak döner.
func Validate(body map[string]any, rules []Rule) (map[string]any, error) {
	var details []string
	out := make(map[string]any, len(rules))

	for _, r := range rules {
		raw, ok := body[r.Field]
		missing := !ok || raw == nil || isEmptyString(raw)

		if missing {
			if r.Required {
				details = append(details, fmt.Sprintf("%s alanı zorunludur", r.Field))
			}
			continue
		}

		switch r.Type {
		case TypeNumber, TypeAmount:
			num, ok := toNumber(raw)
			if !ok {
				details = append(details, fmt.Sprintf("%s sayısal bir değer olmalıdır", r.Field))
				continue
			}
			if r.Type == TypeAmount && (math.IsNaN(num) || math.IsInf(num, 0) || num <= 0) {
				details = append(details, fmt.Sprintf("%s pozitif bir tutar olmalıdır", r.Field))
				continue
			}
			if r.Min != nil && num < *r.Min {
				details = append(details, fmt.Sprintf("%s en az %s olmalıdır", r.Field, formatNum(*r.Min)))
			}
			if r.Max != nil && num > *r.Max {
				details = append(details, fmt.Sprintf("%s en fazla %s olabilir", r.Field, formatNum(*r.Max)))
			}
			if r.Custom != nil {
				if ok, msg := r.Custom(num); !ok {
					details = append(details, msg)
				}
			}
			out[r.Field] = num

		default:
			s, ok := raw.(string)
			if !ok {
				details = append(details, fmt.Sprintf("%s metin olmalıdır", r.Field))
				continue
			}
			s = strings.TrimSpace(s)

			switch r.Type {
			case TypeEmail:
				if !emailRe.MatchString(s) {
					details = append(details, fmt.Sprintf("%s geçerli bir e-posta adresi olmalıdır", r.Field))
					continue
				}
			case TypePhone:
				if !phoneRe.MatchString(strings.ReplaceAll(s, " ", "")) {
					details = append(details, fmt.Sprintf("%s geçerli bir telefon numarası olmalıdır", r.Field))
					continue
				}
			}

			if r.MinLength > 0 && len([]rune(s)) < r.MinLength {
				details = append(details, fmt.Sprintf("%s en az %d karakter olmalıdır", r.Field, r.MinLength))
			}
			if r.MaxLength > 0 && len([]rune(s)) > r.MaxLength {
				details = append(details, fmt.Sprintf("%s en fazla %d karakter olabilir", r.Field, r.MaxLength))
			}
			if r.Pattern != nil && !r.Pattern.MatchString(s) {
				details = append(details, fmt.Sprintf("%s formatı geçersiz", r.Field))
			}
			if r.Custom != nil {
				if ok, msg := r.Custom(s); !ok {
					details = append(details, msg)
				}
			}
			out[r.Field] = Sanitize(s)
		}
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError(details)
	}
	return out, nil
}

// Sanitize HTML açısından anlamlı karakterleri ayıklar.
func Sanitize(s string) string {
	return sanitizeRe.ReplaceAllString(s, "")
}

func isEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func formatNum(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%g", f)
}
