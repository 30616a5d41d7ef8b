package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekarsli/tvservis_backend/internal/models"
)

const testSecret = "test-secret-anahtari"

func TestBayiTokenRoundTrip(t *testing.T) {
	bayi := &models.Bayi{
		Email:    "servis@ornek.com",
		FirmaAdi: "Örnek Elektronik",
		IlID:     34,
	}
	bayi.ID = 7

	token, err := SignBayiToken(testSecret, bayi)
	require.NoError(t, err)

	claims, err := ParseBayiToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.BayiID)
	assert.Equal(t, "servis@ornek.com", claims.Email)
	assert.Equal(t, "Örnek Elektronik", claims.FirmaAdi)
	assert.Equal(t, uint(34), claims.IlID)
}

func TestExpiredTokenRejectedDespiteValidSignature(t *testing.T) {
	now := time.Now()
	claims := BayiClaims{
		BayiID: 7,
		Email:  "servis@ornek.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseBayiToken(testSecret, token)
	require.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	bayi := &models.Bayi{Email: "servis@ornek.com"}
	bayi.ID = 1

	token, err := SignBayiToken(testSecret, bayi)
	require.NoError(t, err)

	_, err = ParseBayiToken("baska-anahtar", token)
	require.Error(t, err)
}

func TestTokenFamiliesAreNotInterchangeable(t *testing.T) {
	bayi := &models.Bayi{Email: "servis@ornek.com"}
	bayi.ID = 1
	admin := &models.AdminKullanici{KullaniciAdi: "yonetici", YetkiSeviyesi: 3}
	admin.ID = 2

	// aynı secret ile imzalansa bile claims şekli tutmaz
	bayiToken, err := SignBayiToken(testSecret, bayi)
	require.NoError(t, err)
	_, err = ParseAdminToken(testSecret, bayiToken)
	require.Error(t, err)

	adminToken, err := SignAdminToken(testSecret, admin)
	require.NoError(t, err)
	_, err = ParseBayiToken(testSecret, adminToken)
	require.Error(t, err)
}

func TestAdminTokenRoundTrip(t *testing.T) {
	admin := &models.AdminKullanici{KullaniciAdi: "yonetici", YetkiSeviyesi: 3}
	admin.ID = 5

	token, err := SignAdminToken(testSecret, admin)
	require.NoError(t, err)

	claims, err := ParseAdminToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.AdminID)
	assert.Equal(t, 3, claims.YetkiSeviyesi)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("gizli-parola")
	require.NoError(t, err)
	assert.NotEqual(t, "gizli-parola", hash)

	assert.True(t, CheckPassword(hash, "gizli-parola"))
	assert.False(t, CheckPassword(hash, "yanlis-parola"))
	// eski sistemin placeholder'ı asla geçmez
	assert.False(t, CheckPassword("hashed_gizli-parola", "gizli-parola"))
}
