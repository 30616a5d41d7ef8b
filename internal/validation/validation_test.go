package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
)

func TestHavaleBildirimRules(t *testing.T) {
	t.Run("amount above ceiling fails with ceiling message", func(t *testing.T) {
		_, err := Validate(map[string]any{
			"tutar":         float64(15000),
			"referans_no":   "ABCDE",
			"havale_tarihi": "2024-01-01",
		}, HavaleBildirimRules())

		require.Error(t, err)
		ae, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		require.NotEmpty(t, ae.Details)

		found := false
		for _, d := range ae.Details {
			if strings.Contains(d, "10000") {
				found = true
			}
		}
		assert.True(t, found, "mesaj 10000 tavanına atıfta bulunmalı: %v", ae.Details)
	})

	t.Run("valid payload passes with amount coerced to number", func(t *testing.T) {
		out, err := Validate(map[string]any{
			"tutar":         float64(500),
			"referans_no":   "ABCDE",
			"havale_tarihi": "2024-01-01",
		}, HavaleBildirimRules())

		require.NoError(t, err)
		assert.Equal(t, float64(500), out["tutar"])
		assert.Equal(t, "ABCDE", out["referans_no"])
	})

	t.Run("all violations reported together", func(t *testing.T) {
		_, err := Validate(map[string]any{
			"tutar":       float64(-5),
			"referans_no": "AB",
		}, HavaleBildirimRules())

		require.Error(t, err)
		ae, _ := apperrors.AsAppError(err)
		// tutar negatif + referans kısa + tarih eksik
		assert.GreaterOrEqual(t, len(ae.Details), 3)
	})

	t.Run("reference too short", func(t *testing.T) {
		_, err := Validate(map[string]any{
			"tutar":         float64(100),
			"referans_no":   "ABC",
			"havale_tarihi": "2024-01-01",
		}, HavaleBildirimRules())
		require.Error(t, err)
	})

	t.Run("bad date format", func(t *testing.T) {
		_, err := Validate(map[string]any{
			"tutar":         float64(100),
			"referans_no":   "ABCDE",
			"havale_tarihi": "01/01/2024",
		}, HavaleBildirimRules())
		require.Error(t, err)
	})
}

func TestValidateTypes(t *testing.T) {
	t.Run("required short-circuits per field", func(t *testing.T) {
		_, err := Validate(map[string]any{}, BayiLoginRules())
		require.Error(t, err)
		ae, _ := apperrors.AsAppError(err)
		assert.Len(t, ae.Details, 2)
	})

	t.Run("email format", func(t *testing.T) {
		_, err := Validate(map[string]any{
			"email":    "bozuk-adres",
			"password": "parola1",
		}, BayiLoginRules())
		require.Error(t, err)
	})

	t.Run("non-numeric amount", func(t *testing.T) {
		_, err := Validate(map[string]any{"tutar": "beşyüz"}, []Rule{
			{Field: "tutar", Required: true, Type: TypeAmount},
		})
		require.Error(t, err)
	})

	t.Run("optional field missing is fine", func(t *testing.T) {
		out, err := Validate(map[string]any{
			"tutar":         float64(100),
			"referans_no":   "ABCDE",
			"havale_tarihi": "2024-01-01",
		}, HavaleBildirimRules())
		require.NoError(t, err)
		_, ok := out["aciklama"]
		assert.False(t, ok)
	})

	t.Run("custom predicate enum", func(t *testing.T) {
		_, err := Validate(map[string]any{"islem": "maybe"}, OdemeKararRules())
		require.Error(t, err)

		out, err := Validate(map[string]any{"islem": "approve"}, OdemeKararRules())
		require.NoError(t, err)
		assert.Equal(t, "approve", out["islem"])
	})
}

func TestSanitize(t *testing.T) {
	out, err := Validate(map[string]any{
		"musteri_adi":     `Ali <script>alert("x")</script>`,
		"musteri_telefon": "05321234567",
		"kategori":        "LED TV",
	}, TalepRules())

	require.NoError(t, err)
	ad := out["musteri_adi"].(string)
	assert.NotContains(t, ad, "<")
	assert.NotContains(t, ad, ">")
	assert.NotContains(t, ad, `"`)
	assert.Contains(t, ad, "Ali")
}
