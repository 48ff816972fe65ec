// Command server runs the forms backend: a multi-tenant form builder API
// with public submission links, email relay, attachment storage, and a
// community comment board.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/skatsaros/go-forms-backend/docs"
	"github.com/skatsaros/go-forms-backend/internal/auth"
	"github.com/skatsaros/go-forms-backend/internal/config"
	"github.com/skatsaros/go-forms-backend/internal/email"
	httpapi "github.com/skatsaros/go-forms-backend/internal/http"
	"github.com/skatsaros/go-forms-backend/internal/observability"
	"github.com/skatsaros/go-forms-backend/internal/repo"
	"github.com/skatsaros/go-forms-backend/internal/storage"
	"github.com/skatsaros/go-forms-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title          Forms Backend API
// @version        1.0
// @description    Multi-tenant form builder with email relay and a community comment board.
// @BasePath       /
func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	version = sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database failed")
	}

	// Object store is optional: without credentials the upload endpoints
	// answer 503 and submissions work without attachments.
	var store storage.ObjectStore
	if cfg.Storage.Endpoint != "" && cfg.Storage.AccessKey != "" {
		ms, err := storage.NewMinioStore(ctx, storage.MinioOptions{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
			UploadTTL: cfg.Storage.UploadTTL,
		})
		if err != nil {
			log.Fatal().Err(err).Str("endpoint", cfg.Storage.Endpoint).Msg("object store setup failed")
		}
		store = ms
	} else {
		log.Warn().Msg("object store not configured; file uploads disabled")
	}

	mailer := email.NewResendSender(cfg.Email.APIKey, cfg.Email.FromAddress)
	provider := auth.NewClient(cfg.Auth.URL, cfg.Auth.APIKey, nil, log.Logger)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, store, mailer, provider, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
