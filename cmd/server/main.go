package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "dresscircle-checkout/internal/api/http"
	"dresscircle-checkout/internal/config"
	"dresscircle-checkout/internal/events"
	"dresscircle-checkout/internal/logger"
	"dresscircle-checkout/internal/payment"
	"dresscircle-checkout/internal/repository/postgres"
	"dresscircle-checkout/internal/security"
	"dresscircle-checkout/internal/service"
	"dresscircle-checkout/internal/utils"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env for local development; a missing file is fine
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DressCircle checkout backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Payment Gateway
	gateway := payment.NewStripeGateway(cfg.Stripe.APIKey)

	// Initialize Event Publisher
	var publisher events.Publisher
	if cfg.RabbitMQ.URL == "" {
		logger.Info("RabbitMQ not configured, order events disabled")
		publisher = events.NoopPublisher{}
	} else {
		publisher, err = events.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Error("Failed to connect to RabbitMQ", "error", err)
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		logger.Info("Connected to RabbitMQ", "exchange", cfg.RabbitMQ.Exchange)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		fmt.Sprintf("%d", cfg.SMTP.Port),
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Summary options come entirely from configuration so the business
	// defaults are overridable per deploy
	opts := utils.SummaryOptions{
		TaxRateBasisPoints:         cfg.Checkout.TaxRateBasisPoints,
		ShippingFlatCents:          cfg.Checkout.ShippingFlatCents,
		FreeShippingThresholdCents: cfg.Checkout.FreeShippingThresholdCents,
		BuyPriceMultiplier:         cfg.Checkout.BuyPriceMultiplier,
		Currency:                   cfg.Checkout.Currency,
	}

	// Initialize Services
	checkoutSvc := service.NewCheckoutService(
		store.DraftOrderRepository,
		store.OrderRepository,
		gateway,
		publisher,
		emailSvc,
		opts,
	)
	orderSvc := service.NewOrderService(store.OrderRepository)

	// Initialize HTTP API
	checkoutHandler := httpapi.NewCheckoutHandler(checkoutSvc)
	orderHandler := httpapi.NewOrderHandler(orderSvc)
	router := httpapi.NewRouter(checkoutHandler, orderHandler, tokenManager)

	logger.Info("Checkout API listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
