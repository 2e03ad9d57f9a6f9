package main

import (
	"context"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fishmart/gateway/internal/api"
	"github.com/fishmart/gateway/internal/api/middleware"
	"github.com/fishmart/gateway/internal/core/ports"
	"github.com/fishmart/gateway/internal/core/service"
	"github.com/fishmart/gateway/internal/infrastructure/config"
	mongodb "github.com/fishmart/gateway/internal/infrastructure/db/mongo"
	"github.com/fishmart/gateway/internal/infrastructure/queue"
	"github.com/fishmart/gateway/internal/infrastructure/store"
	"github.com/fishmart/gateway/internal/infrastructure/upstream"
	"github.com/fishmart/gateway/internal/session"
	"github.com/fishmart/gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	upstreamURL, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.Upstream.BaseURL).Msg("invalid upstream url")
	}

	// Credential store: Redis when reachable, with an in-process fallback so
	// sessions survive a Redis outage in degraded mode.
	memory := store.NewMemory(cfg.SessionTTL)
	var credentials ports.CredentialStore = memory
	rdb, err := store.Connect(ctx, store.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, credentials held in memory only")
		rdb = nil
	} else {
		credentials = store.NewFallback(store.NewRedis(rdb, cfg.SessionTTL), memory, logger.With("store"))
	}

	// Audit trail is optional; without Mongo the gateway runs without one.
	var audit ports.AuditSink
	var db *mongo.Database
	if cfg.Mongo.URI != "" {
		_, db, err = mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connect failed")
		}
		dispatcher := queue.NewDispatcher(0, mongodb.NewAuditRepository(db), logger.With("audit"))
		dispatcher.Start(ctx)
		audit = dispatcher
	}

	authClient := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	sessions := service.NewSessionService(credentials, authClient, audit, logger.With("session"))
	cookies := session.NewCookieManager(cfg.CookieSecret, cfg.CookieName, cfg.CookieSecure, cfg.SessionTTL)

	loginLimit := middleware.NewLoginRateLimiter(cfg.LoginRatePerMin, cfg.LoginBurst)
	defer loginLimit.Stop()

	e := api.NewRouter(api.Deps{
		Sessions:    sessions,
		Deliveries:  authClient,
		Cookies:     cookies,
		UpstreamURL: upstreamURL,
		LoginLimit:  loginLimit,
		Redis:       rdb,
		Mongo:       db,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.Upstream.BaseURL).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}
