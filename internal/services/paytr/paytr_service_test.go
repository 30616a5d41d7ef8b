package paytr

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return NewService("123456", "merchant-key", "merchant-salt", "http://localhost:8080/odeme", true)
}

func TestValidateCallback(t *testing.T) {
	s := testService()

	sign := func(data string) string {
		h := hmac.New(sha256.New, []byte(s.MerchantKey))
		h.Write([]byte(data))
		return base64.StdEncoding.EncodeToString(h.Sum(nil))
	}

	oid, status, amount := "KRD-abc-001", "success", "50000"
	good := sign(oid + s.Salt + status + amount)

	assert.True(t, s.ValidateCallback(oid, status, amount, good))
	assert.False(t, s.ValidateCallback(oid, "failed", amount, good))
	assert.False(t, s.ValidateCallback(oid, status, "1", good))
	assert.False(t, s.ValidateCallback(oid, status, amount, "bozuk-imza"))
}

func TestCreateToken(t *testing.T) {
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.Form {
			gotForm[k] = r.Form.Get(k)
		}
		w.Write([]byte(`{"status":"success","token":"ifrm-token-123"}`))
	}))
	defer srv.Close()

	s := testService()
	s.BaseURL = srv.URL

	resp, err := s.CreateToken("KRD-abc-002", "bayi@ornek.com", "10.0.0.1", "Örnek Elektronik", 50000)
	require.NoError(t, err)
	assert.Equal(t, "ifrm-token-123", resp.Token)

	assert.Equal(t, "123456", gotForm["merchant_id"])
	assert.Equal(t, "KRD-abc-002", gotForm["merchant_oid"])
	assert.Equal(t, "50000", gotForm["payment_amount"])
	assert.Equal(t, "1", gotForm["test_mode"])
	assert.NotEmpty(t, gotForm["paytr_token"])
	assert.NotEmpty(t, gotForm["user_basket"])
}

func TestCreateTokenGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"failed","reason":"hatalı istek"}`))
	}))
	defer srv.Close()

	s := testService()
	s.BaseURL = srv.URL

	_, err := s.CreateToken("KRD-abc-003", "bayi@ornek.com", "10.0.0.1", "Örnek", 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hatalı istek")
}
