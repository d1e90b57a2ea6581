package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/apiclient"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/router"
	"storefront/internal/storage"
	"storefront/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Tracing, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error().Err(err).Msg("failed to flush traces")
		}
	}()

	snapshots, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open cart storage: %w", err)
	}
	defer snapshots.Close()

	store := cart.NewStore(snapshots, cart.Options{
		Key:          cfg.Storage.Key,
		DefaultImage: cfg.Checkout.DefaultImage,
	}, logger)
	restored := store.Restore(ctx)
	logger.Info().
		Int("item_count", restored.ItemCount).
		Str("backend", cfg.Storage.Backend).
		Msg("cart restored")

	store.Subscribe(func(c model.Cart) {
		logger.Debug().
			Int("item_count", c.ItemCount).
			Str("total", c.Total.StringFixed(2)).
			Msg("cart changed")
	})

	client := apiclient.New(cfg.API.BaseURL, apiclient.Options{Timeout: cfg.API.Timeout()}, logger)

	cat := catalog.New(client, cfg.Checkout.WhatsAppNumber, logger)
	if _, err := cat.Load(ctx); err != nil {
		// The page shows a banner; the server still starts and a reload can recover.
		logger.Error().Err(err).Msg("initial catalog load failed")
	}

	checkoutService := checkout.NewService(store, cat, client, checkout.Options{
		BaseURL: cfg.Checkout.WhatsAppBaseURL,
		Prices:  checkout.NewPriceFormatter(cfg.Checkout.CurrencySymbol, cfg.Checkout.CurrencyLocale),
		Opener:  checkout.NewLogOpener(logger),
	}, logger)

	mux := router.New(router.Handlers{
		Catalog:   handler.NewCatalogHandler(cat, logger),
		Cart:      handler.NewCartHandler(store, cat, logger),
		Favorites: handler.NewFavoritesHandler(catalog.NewFavorites(), logger),
		Checkout:  handler.NewCheckoutHandler(checkoutService, logger),
	}, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("api_base_url", cfg.API.BaseURL).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
