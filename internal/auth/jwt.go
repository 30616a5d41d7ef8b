package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/emrekarsli/tvservis_backend/internal/apperrors"
	"github.com/emrekarsli/tvservis_backend/internal/models"
)

// Bayi ve admin token'ları ayrı secret'larla imzalanır ve asla birbirinin
// yerine geçmez. Bayi token'ı ek olarak sunucu tarafı oturum kaydına bağlıdır
// (bkz. middleware), admin token'ı sadece imza + süre ile doğrulanır.

const (
	BayiTokenTTL  = 24 * time.Hour
	AdminTokenTTL = 8 * time.Hour
)

type BayiClaims struct {
	BayiID   uint   `json:"bayiId"`
	Email    string `json:"email"`
	FirmaAdi string `json:"firmaAdi"`
	IlID     uint   `json:"ilId"`
	jwt.RegisteredClaims
}

type AdminClaims struct {
	AdminID       uint   `json:"adminId"`
	KullaniciAdi  string `json:"kullanici_adi"`
	YetkiSeviyesi int    `json:"yetki_seviyesi"`
	jwt.RegisteredClaims
}

func SignBayiToken(secret string, b *models.Bayi) (string, error) {
	now := time.Now()
	claims := BayiClaims{
		BayiID:   b.ID,
		Email:    b.Email,
		FirmaAdi: b.FirmaAdi,
		IlID:     b.IlID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(BayiTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseBayiToken(secret, tokenStr string) (*BayiClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &BayiClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewAuthenticationError("Geçersiz veya süresi dolmuş oturum")
	}
	claims, ok := token.Claims.(*BayiClaims)
	if !ok || claims.BayiID == 0 {
		return nil, apperrors.NewAuthenticationError("Geçersiz oturum")
	}
	return claims, nil
}

func SignAdminToken(secret string, a *models.AdminKullanici) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		AdminID:       a.ID,
		KullaniciAdi:  a.KullaniciAdi,
		YetkiSeviyesi: a.YetkiSeviyesi,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AdminTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseAdminToken(secret, tokenStr string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewAuthenticationError("Geçersiz veya süresi dolmuş oturum")
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || claims.AdminID == 0 {
		return nil, apperrors.NewAuthenticationError("Geçersiz oturum")
	}
	return claims, nil
}

// TokenHash oturum tablosunda ham token yerine saklanan özet.
func TokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
