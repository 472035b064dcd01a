package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-journal/internal/adapters/auth/jwtauth"
	"pet-care-journal/internal/adapters/auth/remote"
	"pet-care-journal/internal/adapters/photos/local"
	s3photos "pet-care-journal/internal/adapters/photos/s3"
	"pet-care-journal/internal/adapters/storage"
	"pet-care-journal/internal/config"
	"pet-care-journal/internal/platform/logger"
	"pet-care-journal/internal/ports/auth"
	"pet-care-journal/internal/ports/photos"
	"pet-care-journal/internal/router"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// @title Pet Care Journal API
// @version 1.0
// @description Perfiles de mascotas, salud, diario con fotos y recordatorios.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", logger.Fields{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if cfg.EnableTracing {
		if err := xray.Configure(xray.Config{ServiceVersion: "1.0.0"}); err != nil {
			log.Warn("xray configure failed; using defaults", logger.Fields{"err": err})
		}
		// Sin segmento activo (migraciones, arranque) solo se registra el error.
		_ = os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error("storage init failed", logger.Fields{"err": err, "engine": cfg.StoreEngine})
		os.Exit(1)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Warn("storage close failed", logger.Fields{"err": err})
		}
	}()

	verifier, err := newVerifier(cfg)
	if err != nil {
		log.Error("auth init failed", logger.Fields{"err": err, "mode": cfg.AuthMode})
		os.Exit(1)
	}
	if verifier == nil {
		log.Warn("auth in dev mode; X-Debug-User-ID is trusted", nil)
	}

	photoStore, media, err := newPhotoStore(ctx, cfg)
	if err != nil {
		log.Error("photo store init failed", logger.Fields{"err": err, "store": cfg.PhotoStore})
		os.Exit(1)
	}

	r := router.NewRouter(router.Options{
		Logger:         log,
		AuthVerifier:   verifier,
		Repos:          repos,
		Photos:         photoStore,
		MediaHandler:   media,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		EnableTracing:  cfg.EnableTracing,
		AppName:        cfg.AppName,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": cfg.Addr(), "store": cfg.StoreEngine, "photos": cfg.PhotoStore})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", logger.Fields{"err": err})
		}
	case <-ctx.Done():
		log.Info("shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", logger.Fields{"err": err})
		}
	}
}

// newVerifier devuelve nil en modo dev.
func newVerifier(cfg config.Config) (auth.AuthVerifier, error) {
	switch cfg.AuthMode {
	case "jwt":
		v, err := jwtauth.NewVerifier(cfg.JWTSecret)
		if err != nil {
			return nil, err
		}
		return v, nil
	case "remote":
		v, err := remote.NewVerifier(remote.Config{BaseURL: cfg.AuthBaseURL, APIKey: cfg.AuthAPIKey})
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, nil
	}
}

// newPhotoStore devuelve además el handler de /media cuando las fotos van a disco.
func newPhotoStore(ctx context.Context, cfg config.Config) (photos.Store, http.Handler, error) {
	if cfg.PhotoStore == "s3" {
		s, err := s3photos.New(ctx, s3photos.Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
			BaseURL:   cfg.PhotoBaseURL,
			Tracing:   cfg.EnableTracing,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}

	s, err := local.New(cfg.PhotoDir, cfg.PhotoBaseURL)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Handler(), nil
}
