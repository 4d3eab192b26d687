package main

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	server "oldbaku_hotel/internal/adapters/http_server"
	"oldbaku_hotel/internal/adapters/mailer"
	"oldbaku_hotel/internal/adapters/observability"
	redisad "oldbaku_hotel/internal/adapters/redis"
	"oldbaku_hotel/internal/adapters/stripe"
	"oldbaku_hotel/internal/app"
	"oldbaku_hotel/internal/auth"
	"oldbaku_hotel/internal/domain"
	"oldbaku_hotel/internal/shared"
	"oldbaku_hotel/internal/storage/jsonfile"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// deps
	store := jsonfile.New(cfg.DataDir)

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("room catalog cache enabled")
	}

	var notifier domain.Notifier
	if m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.OwnerNotify); m != nil {
		notifier = m
		log.Info().Str("host", cfg.SMTPHost).Msg("owner notifications enabled")
	}

	var provider domain.PaymentProvider
	if cfg.StripeSecretKey != "" {
		cl, err := stripe.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("stripe client init failed")
		}
		provider = cl
	}

	tokens := auth.New(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.TokenTTL)
	catalog := app.NewCatalogService(store, cache, cfg.CacheTTL)
	bookings := app.NewBookingService(store, catalog, notifier, observability.Recorder{})
	payments := app.NewPaymentService(provider, catalog, store, cfg.ClientOrigin, observability.Recorder{})

	// http
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitRPS*2)
	srv := server.New(cfg.ClientOrigin, limiter)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Auth:     tokens,
		Catalog:  catalog,
		Bookings: bookings,
		Payments: payments,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
