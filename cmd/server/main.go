package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SerkanKacar01/kaniou-orders/internal/config"
	"github.com/SerkanKacar01/kaniou-orders/internal/dispatch"
	"github.com/SerkanKacar01/kaniou-orders/internal/handlers"
	"github.com/SerkanKacar01/kaniou-orders/internal/hours"
	"github.com/SerkanKacar01/kaniou-orders/internal/middleware"
	"github.com/SerkanKacar01/kaniou-orders/internal/notify"
	"github.com/SerkanKacar01/kaniou-orders/internal/pricing"
	"github.com/SerkanKacar01/kaniou-orders/internal/repository"
	"github.com/SerkanKacar01/kaniou-orders/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting kaniou orders backend",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store_mode", cfg.Database.Mode,
		"sink_mode", cfg.RabbitMQ.Mode,
	)

	ctx := context.Background()

	// Business-hours schedule
	openDays, err := hours.ParseWeekdays(cfg.Hours.OpenDays)
	if err != nil {
		log.Error("invalid business days configuration", "error", err)
		os.Exit(1)
	}
	openAt, err := hours.ParseTimeOfDay(cfg.Hours.Open)
	if err != nil {
		log.Error("invalid opening time configuration", "error", err)
		os.Exit(1)
	}
	closeAt, err := hours.ParseTimeOfDay(cfg.Hours.Close)
	if err != nil {
		log.Error("invalid closing time configuration", "error", err)
		os.Exit(1)
	}
	schedule, err := hours.NewSchedule(cfg.Hours.Timezone, openDays, openAt, closeAt)
	if err != nil {
		log.Error("invalid business-hours configuration", "error", err)
		os.Exit(1)
	}

	// Order store
	var store repository.OrderStore
	if cfg.Database.Mode == "postgres" {
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			log.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Error("database unreachable", "error", err)
			os.Exit(1)
		}

		pgStore, err := repository.NewPostgresOrderStore(ctx, pool)
		if err != nil {
			log.Error("failed to initialize order store", "error", err)
			os.Exit(1)
		}
		store = pgStore
		log.Info("connected to postgres order store")
	} else {
		store = repository.NewInMemoryOrderStore()
		log.Info("using in-memory order store")
	}

	// Notification sink
	var sink notify.Sink
	if cfg.RabbitMQ.Mode == "amqp" {
		conn, ch, err := notify.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			log.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		amqpSink, err := notify.NewAMQPSink(ch)
		if err != nil {
			log.Error("failed to set up notification sink", "error", err)
			os.Exit(1)
		}
		sink = amqpSink
		log.Info("connected to rabbitmq notification sink")
	} else {
		sink = notify.NewLogSink(log)
		log.Info("using log notification sink")
	}

	// Core services
	calculator := pricing.NewCalculator(pricing.DefaultCatalog())
	dispatcher := dispatch.NewDispatcher(store, sink, log)

	// Handlers
	healthHandler := handlers.NewHealthHandler(log)
	quoteHandler := handlers.NewQuoteHandler(calculator, log)
	orderHandler := handlers.NewOrderHandler(dispatcher, store, log)
	hoursHandler := handlers.NewHoursHandler(schedule, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Api-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/quote", quoteHandler.CalculateQuote)
		r.Post("/order", orderHandler.CreateOrder)
		r.Get("/order/track/{referenceCode}", orderHandler.TrackOrder)
		r.Get("/business-hours", hoursHandler.BusinessStatus)

		// Entrepreneur dashboard, API-key protected
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))
			r.Get("/orders/{orderId}", orderHandler.GetOrder)
			r.Patch("/orders/{orderId}", orderHandler.UpdateOrder)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
