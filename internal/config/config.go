package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort    string
	AppEnv     string
	AppBaseURL string
	DBPath     string

	BayiJWTSecret  string
	AdminJWTSecret string

	PaytrMerchantID  string
	PaytrMerchantKey string
	PaytrSalt        string

	RateLimitMax    int
	RateLimitWindow time.Duration
	RedisAddr       string

	// DevBypassToken is only honored when AppEnv == "development".
	DevBypassToken string

	MailFrom string
}

func Load() Config {
	maxReq, _ := strconv.Atoi(get("RATE_LIMIT_MAX", "30"))
	windowSec, _ := strconv.Atoi(get("RATE_LIMIT_WINDOW_SEC", "60"))

	return Config{
		AppPort:    get("APP_PORT", "8080"),
		AppEnv:     get("APP_ENV", "development"),
		AppBaseURL: get("APP_BASE_URL", "http://localhost:8080"),
		DBPath:     get("DB_PATH", "./tvservis.db"),

		BayiJWTSecret:  must("BAYI_JWT_SECRET"),
		AdminJWTSecret: must("ADMIN_JWT_SECRET"),

		PaytrMerchantID:  get("PAYTR_MERCHANT_ID", ""),
		PaytrMerchantKey: get("PAYTR_MERCHANT_KEY", ""),
		PaytrSalt:        get("PAYTR_SALT", ""),

		RateLimitMax:    maxReq,
		RateLimitWindow: time.Duration(windowSec) * time.Second,
		RedisAddr:       get("REDIS_ADDR", ""),

		DevBypassToken: get("DEV_BYPASS_TOKEN", ""),

		MailFrom: get("MAIL_FROM", "destek@tvservis.local"),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
