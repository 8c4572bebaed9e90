package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ne-attend/ne-attend-api/api/handlers"
	"github.com/ne-attend/ne-attend-api/api/scheduler"
	"github.com/ne-attend/ne-attend-api/config"
	"github.com/ne-attend/ne-attend-api/databases"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := handlers.App{}
	a.Config = *config.New()
	defer zap.L().Sync()

	if err := a.Initialize(); err != nil { //initialize database and router
		return err
	}

	var mailer scheduler.Mailer
	if m := scheduler.NewSendgridMailer(a.Config.SendgridAPIKey, a.Config.SendgridFromEmail); m != nil {
		mailer = m
	}
	s := scheduler.NewScheduler(
		databases.NewUserDatabase(a.DB()),
		databases.NewAnnouncementDatabase(a.DB()),
		databases.NewTokenDatabase(a.DB()),
		mailer,
		a.Config.BaseURL,
	)
	if err := s.Start(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + a.Config.Port,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.Config.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		zap.S().Infow("ne-attend-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		zap.S().Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("server shutdown error", "error", err)
	}
	s.Stop()
	if err := a.Close(shutdownCtx); err != nil {
		zap.S().Errorw("failed to disconnect from database", "error", err)
	}
	zap.S().Info("ne-attend-api stopped")
	return nil
}
