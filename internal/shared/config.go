package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	DataDir      string
	ClientOrigin string

	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration

	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	OwnerNotify string

	StripeSecretKey     string
	StripeWebhookSecret string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	RateLimitRPS int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":4000"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		DataDir:      env("DATA_DIR", "data"),
		ClientOrigin: env("CLIENT_ORIGIN", "http://localhost:8000"),

		AdminEmail:        env("ADMIN_EMAIL", ""),
		AdminPasswordHash: env("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         env("JWT_SECRET", ""),
		TokenTTL:          time.Duration(atoi("TOKEN_TTL_HOURS", 8)) * time.Hour,

		SMTPHost:    env("SMTP_HOST", ""),
		SMTPPort:    atoi("SMTP_PORT", 465),
		SMTPUser:    env("SMTP_USER", ""),
		SMTPPass:    env("SMTP_PASS", ""),
		OwnerNotify: env("OWNER_NOTIFY_EMAIL", ""),

		StripeSecretKey:     env("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: env("STRIPE_WEBHOOK_SECRET", ""),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		RateLimitRPS: atoi("RATE_LIMIT_RPS", 20),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; owner login disabled")
	}
	if c.StripeSecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY is empty; payments disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
