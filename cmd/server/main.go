package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/logger"

	"giftexchange/internal/auth"
	"giftexchange/internal/config"
	"giftexchange/internal/handlers"
	"giftexchange/internal/matcher"
	"giftexchange/internal/services"
	"giftexchange/internal/storage"
)

func main() {
	// 1. Load configuration from the environment (and .env)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize logging
	var logFile io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logFile = f
	}
	defer logger.Init("giftexchange", cfg.Verbose || cfg.LogFile == "", false, logFile).Close()

	// 3. Open the store
	db, err := badger.Open(badger.DefaultOptions(cfg.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		logger.Fatalf("Failed to open badger at %s: %v", cfg.BadgerFilepath, err)
	}
	defer db.Close()

	// 4. Initialize the Exchange Service
	exchangeService := services.NewExchangeService(
		storage.NewBadgerStore(db),
		services.WithMatcherOptions(matcher.WithMaxSteps(cfg.MatchMaxSteps)),
		services.WithMaxImageBytes(cfg.MaxImageBytes),
	)

	// 5. Admin authentication
	admin, err := auth.NewAdmin(cfg.AdminPasswordHash, cfg.AdminPassword, auth.NewTokenIssuer(cfg.JWTSecret, cfg.AuthTokenDuration))
	if err != nil {
		logger.Fatalf("Failed to set up admin authentication: %v", err)
	}

	// 6. Initialize the HTTP Handler and router
	httpHandler := handlers.NewHTTPHandler(exchangeService, admin, cfg.BaseURL)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(httpHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 7. Start the background janitor to reclaim store space
	go func() {
		ticker := time.NewTicker(cfg.GCInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				exchangeService.CollectGarbage()
			}
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown: %v", err)
		}
	}()

	// 8. Run the server
	logger.Infof("Server starting on %s (public base URL %s)", cfg.Addr(), cfg.BaseURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("Failed to run server: %v", err)
		return
	}
	logger.Infof("Server stopped")
}
