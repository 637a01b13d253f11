package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/cart"
	"github.com/Azizyco/WarmindoGenzC/internal/catalog"
	"github.com/Azizyco/WarmindoGenzC/internal/checkout"
	"github.com/Azizyco/WarmindoGenzC/internal/config"
	"github.com/Azizyco/WarmindoGenzC/internal/db"
	"github.com/Azizyco/WarmindoGenzC/internal/intake"
	"github.com/Azizyco/WarmindoGenzC/internal/order"
	"github.com/Azizyco/WarmindoGenzC/internal/payment"
	"github.com/Azizyco/WarmindoGenzC/internal/queue"
	"github.com/Azizyco/WarmindoGenzC/internal/recommend"
	"github.com/Azizyco/WarmindoGenzC/internal/session"
	"github.com/Azizyco/WarmindoGenzC/internal/storage"
	"github.com/Azizyco/WarmindoGenzC/internal/transport"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront starting...")

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	database, err := db.New(cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	store, err := session.NewRedisStore(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}

	menuImages, err := storage.NewS3Bucket(cfg.Storage.MenuImages)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open menu images bucket")
	}
	paymentConfig, err := storage.NewS3Bucket(cfg.Storage.PaymentConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open payment config bucket")
	}
	paymentProofs, err := storage.NewS3Bucket(cfg.Storage.PaymentProofs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open payment proofs bucket")
	}

	catalogSvc := catalog.NewService(catalog.NewRepository(database.Pool), menuImages)
	intakeSvc := intake.NewService(store, intake.NewRepository(database.Pool))
	cartSvc := cart.NewService(store, catalogSvc)
	orderRepo := order.NewRepository(database.Pool)
	checkoutSvc := checkout.NewService(cartSvc, intakeSvc, orderRepo)

	settingsRepo := payment.NewCachedSettings(
		payment.NewSettingsRepository(database.Pool, paymentConfig), store)
	paymentSvc := payment.NewService(orderRepo, settingsRepo, paymentProofs)

	queueSvc := queue.NewService(queue.NewRepository(database.Pool))
	watcher := queue.NewWatcher(database.Pool, queueSvc)

	var provider recommend.Provider
	if cfg.Gemini.APIKey != "" {
		provider = recommend.NewGeminiProvider(catalogSvc, cfg.Gemini)
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, using rule-based recommendations")
		provider = recommend.NewTimeOfDayProvider(catalogSvc)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	router := transport.NewRouter(transport.Deps{
		Catalog:   catalogSvc,
		Intake:    intakeSvc,
		Cart:      cartSvc,
		Checkout:  checkoutSvc,
		Orders:    orderRepo,
		Payment:   paymentSvc,
		Queue:     watcher,
		Recommend: provider,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
