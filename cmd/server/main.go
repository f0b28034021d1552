package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/novaxiii/agency-backend/internal/api"
	"github.com/novaxiii/agency-backend/internal/auth"
	"github.com/novaxiii/agency-backend/internal/config"
	"github.com/novaxiii/agency-backend/internal/handler"
	"github.com/novaxiii/agency-backend/internal/leaderboard"
	"github.com/novaxiii/agency-backend/internal/logger"
	"github.com/novaxiii/agency-backend/internal/services"
	"github.com/novaxiii/agency-backend/internal/storage"
)

func main() {
	if err := run(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error("Close store: %v", err)
		}
	}()

	var mailer services.Mailer = services.LogMailer{}
	if cfg.MailEnabled() {
		smtp, err := services.NewSMTPMailer(cfg)
		if err != nil {
			return err
		}
		mailer = smtp
	} else {
		logger.Warning("EMAIL_USER/EMAIL_PASS not set, application notifications are only logged")
	}

	h := &handler.Handler{
		Store:        store,
		Tokens:       auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Passwords:    auth.NewPasswords(cfg.BcryptCost),
		Leaderboard:  leaderboard.NewService(store.Performance, store.Accounts),
		Applications: services.NewApplicationService(store.Applications, mailer, cfg.AdminEmail, cfg.NotifyTimeout),
	}
	if cfg.CloudinaryEnabled() {
		cld, err := services.NewCloudinaryService(cfg)
		if err != nil {
			return err
		}
		h.Uploader = cld
	} else {
		logger.Warning("Cloudinary not configured, upload routes are disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.SetupRouter(h, cfg.AllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Success("Server starting on port %s (store: %s)", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Success("Server stopped")
	return nil
}
