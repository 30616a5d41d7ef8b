package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/emrekarsli/tvservis_backend/pkg/logger"
)

const (
	retryAttempts  = 3
	retryBaseDelay = 100 * time.Millisecond
)

// WithRetry geçici hatalarda işlemi en fazla 3 kez, lineer artan bekleme ile
// (delay × deneme) tekrarlar. Kalıcı hatalar (kayıt yok, constraint ihlali)
// hemen döner; bunları tekrarlamak non-idempotent yazmalar için tehlikelidir.
func WithRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		if attempt < retryAttempts {
			logger.Warn("geçici veritabanı hatası, tekrar denenecek",
				"deneme", attempt, "error", err.Error())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBaseDelay * time.Duration(attempt)):
			}
		}
	}
	return err
}

// IsTransient yalnızca bağlantı/kilit/zaman aşımı türü hataları geçici sayar.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "constraint") || strings.Contains(msg, "unique") {
		return false
	}

	for _, s := range []string{"database is locked", "database table is locked", "busy", "timeout", "connection"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
