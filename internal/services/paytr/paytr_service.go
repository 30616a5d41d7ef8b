package paytr

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Service PayTR iFrame API istemcisi. İş akışı bu sınırdan yalnızca
// "ödeme başarılı/başarısız, sipariş X, tutar Y" bilgisini tüketir.
type Service struct {
	Client      *http.Client
	MerchantID  string
	MerchantKey string
	Salt        string
	BaseURL     string
	CallbackURL string
	TestMode    bool
}

func NewService(merchantID, merchantKey, salt, callbackURL string, testMode bool) *Service {
	return &Service{
		Client:      &http.Client{Timeout: 15 * time.Second},
		MerchantID:  merchantID,
		MerchantKey: merchantKey,
		Salt:        salt,
		BaseURL:     "https://www.paytr.com/odeme/api",
		CallbackURL: callbackURL,
		TestMode:    testMode,
	}
}

type TokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// CreateToken iFrame token'ı alır. amount kuruş cinsindendir.
// İmza: base64(HMAC-SHA256(alanların birleşimi + salt, merchant_key)).
func (s *Service) CreateToken(merchantOid, email, userIP, userName string, amount int64) (*TokenResponse, error) {
	basket := base64.StdEncoding.EncodeToString([]byte(
		fmt.Sprintf(`[["Kredi yükleme","%d",1]]`, amount)))

	testMode := "0"
	if s.TestMode {
		testMode = "1"
	}
	noInstallment := "1"
	maxInstallment := "0"
	currency := "TL"

	hashStr := s.MerchantID + userIP + merchantOid + email + strconv.FormatInt(amount, 10) +
		basket + noInstallment + maxInstallment + currency + testMode
	token := s.sign(hashStr + s.Salt)

	form := url.Values{}
	form.Set("merchant_id", s.MerchantID)
	form.Set("user_ip", userIP)
	form.Set("merchant_oid", merchantOid)
	form.Set("email", email)
	form.Set("payment_amount", strconv.FormatInt(amount, 10))
	form.Set("paytr_token", token)
	form.Set("user_basket", basket)
	form.Set("no_installment", noInstallment)
	form.Set("max_installment", maxInstallment)
	form.Set("currency", currency)
	form.Set("test_mode", testMode)
	form.Set("user_name", userName)
	form.Set("merchant_ok_url", s.CallbackURL+"/ok")
	form.Set("merchant_fail_url", s.CallbackURL+"/fail")
	form.Set("timeout_limit", "30")

	resp, err := s.Client.PostForm(s.BaseURL+"/get-token", form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var tr TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("paytr yanıtı çözülemedi: %v", err)
	}
	if tr.Status != "success" {
		return nil, fmt.Errorf("paytr hatası: %s", tr.Reason)
	}
	return &tr, nil
}

// ValidateCallback bildirim imzasını doğrular.
// hash = base64(HMAC-SHA256(merchant_oid + salt + status + total_amount, merchant_key))
func (s *Service) ValidateCallback(merchantOid, status, totalAmount, incomingHash string) bool {
	expected := s.sign(merchantOid + s.Salt + status + totalAmount)
	return hmac.Equal([]byte(expected), []byte(incomingHash))
}

func (s *Service) sign(data string) string {
	h := hmac.New(sha256.New, []byte(s.MerchantKey))
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
