package main

import (
	"fmt"
	"os"

	"github.com/abd-Kabir/cargo-bot/internal/auth"
	"github.com/abd-Kabir/cargo-bot/internal/config"
	"github.com/abd-Kabir/cargo-bot/internal/db"
	"github.com/abd-Kabir/cargo-bot/internal/excel"
	httphandler "github.com/abd-Kabir/cargo-bot/internal/http"
	"github.com/abd-Kabir/cargo-bot/internal/http/middleware"
	"github.com/abd-Kabir/cargo-bot/internal/logger"
	"github.com/abd-Kabir/cargo-bot/internal/notify"
	"github.com/abd-Kabir/cargo-bot/internal/pdf"
	"github.com/abd-Kabir/cargo-bot/internal/pricing"
	"github.com/abd-Kabir/cargo-bot/internal/repository"
	"github.com/abd-Kabir/cargo-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	store := repository.NewStore(database)
	prices := pricing.NewResolver(cfg.Pricing)
	notifier := notify.NewTelegramNotifier(cfg.Bot, log)

	productService := service.NewProductService(store, log)
	loadService := service.NewLoadService(store, prices, log)
	paymentService := service.NewPaymentService(store, notifier, log)
	registrationService := service.NewRegistrationService(store, log)
	statsService := service.NewStatsService(store)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(
		productService,
		loadService,
		paymentService,
		registrationService,
		statsService,
		excel.NewGenerator(),
		pdf.NewGenerator(),
		log,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting cargo service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
