package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is the common shape every domain error funnels through.
// Operational errors are expected failures (bad input, broken rules)
// and are logged at warn level; anything else is a bug and logs at error level.
type AppError struct {
	Code        string
	Message     string
	StatusCode  int
	Details     []string
	Operational bool
	Err         error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(details []string) *AppError {
	return &AppError{
		Code:        "VALIDATION_ERROR",
		Message:     "Doğrulama hatası",
		StatusCode:  fiber.StatusBadRequest,
		Details:     details,
		Operational: true,
	}
}

func NewAuthenticationError(message string) *AppError {
	if message == "" {
		message = "Oturum doğrulanamadı"
	}
	return &AppError{
		Code:        "AUTHENTICATION_ERROR",
		Message:     message,
		StatusCode:  fiber.StatusUnauthorized,
		Operational: true,
	}
}

func NewAuthorizationError(message string) *AppError {
	if message == "" {
		message = "Bu işlem için yetkiniz yok"
	}
	return &AppError{
		Code:        "AUTHORIZATION_ERROR",
		Message:     message,
		StatusCode:  fiber.StatusForbidden,
		Operational: true,
	}
}

func NewBusinessError(message string) *AppError {
	return &AppError{
		Code:        "BUSINESS_ERROR",
		Message:     message,
		StatusCode:  fiber.StatusBadRequest,
		Operational: true,
	}
}

// NewDatabaseError hides the underlying failure from the client;
// the wrapped error only reaches the server-side log.
func NewDatabaseError(err error) *AppError {
	return &AppError{
		Code:        "DATABASE_ERROR",
		Message:     "Veritabanı hatası oluştu",
		StatusCode:  fiber.StatusInternalServerError,
		Operational: false,
		Err:         err,
	}
}

func NewRateLimitError() *AppError {
	return &AppError{
		Code:        "RATE_LIMIT_ERROR",
		Message:     "Çok fazla istek gönderildi, lütfen bekleyin",
		StatusCode:  fiber.StatusTooManyRequests,
		Operational: true,
	}
}

func IsValidation(err error) bool  { return hasCode(err, "VALIDATION_ERROR") }
func IsBusiness(err error) bool    { return hasCode(err, "BUSINESS_ERROR") }
func IsDatabase(err error) bool    { return hasCode(err, "DATABASE_ERROR") }
func IsRateLimited(err error) bool { return hasCode(err, "RATE_LIMIT_ERROR") }

func hasCode(err error, code string) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
