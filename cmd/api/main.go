package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/loanpath/backend/internal/cache"
	"github.com/loanpath/backend/internal/config"
	"github.com/loanpath/backend/internal/handler"
	"github.com/loanpath/backend/internal/provider"
	"github.com/loanpath/backend/internal/repository"
	"github.com/loanpath/backend/internal/scheduler"
	"github.com/loanpath/backend/internal/service"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Offer cache: shared Redis when configured, in-process otherwise
	var offerCache cache.OfferCache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.OfferCacheTTL)
		defer func() { _ = redisCache.Close() }()
		offerCache = redisCache
		logger.Info("Using Redis offer cache", slog.String("addr", cfg.RedisAddr))
	} else {
		offerCache = cache.NewMemoryCache(cfg.OfferCacheTTL)
		logger.Info("Using in-memory offer cache")
	}

	// Initialize repositories
	trackerRepo := repository.NewTrackerRepository(db)

	// Initialize services
	feedClient := provider.NewClient(cfg.OfferFeedURL, cfg.OfferFeedTimeout)
	offerService := service.NewOfferService(feedClient, offerCache)
	affordabilityService := service.NewAffordabilityService(offerService, cfg.DefaultOfferRate, cfg.DefaultTermMonths)
	trackerService := service.NewTrackerService(trackerRepo)

	// Initialize handlers
	affordabilityHandler := handler.NewAffordabilityHandler(affordabilityService)
	offerHandler := handler.NewOfferHandler(offerService)
	trackerHandler := handler.NewTrackerHandler(trackerService)

	// Initialize scheduler for offer refreshing
	var offerScheduler *scheduler.Scheduler
	if cfg.OfferRefreshEnabled {
		schedCfg := scheduler.Config{
			Schedule: cfg.OfferRefreshSchedule,
			Timeout:  cfg.OfferRefreshTimeout,
			Enabled:  cfg.OfferRefreshEnabled,
		}
		offerScheduler = scheduler.New(schedCfg, offerService, logger)
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(handler.RequestLogger)
	// CORS - allow frontend origin from env or default
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]string{"status": "ok"}
		if offerScheduler != nil && offerScheduler.IsRunning() {
			health["nextOfferRefresh"] = offerScheduler.GetNextRunTime().Format(time.RFC3339)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(health)
	})

	// Public routes - affordability tools need no account
	r.Get("/api/loans/calculator", affordabilityHandler.Calculator)
	r.Get("/api/loans/suggestions", affordabilityHandler.Suggestions)
	r.Get("/api/loans/offers", offerHandler.List)
	r.Get("/api/loans/offers/compare", affordabilityHandler.CompareOffers)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(handler.AuthMiddleware)

		// Application tracker
		r.Get("/api/tracker", trackerHandler.List)
		r.Post("/api/tracker", trackerHandler.Create)
		r.Get("/api/tracker/{id}", trackerHandler.Get)
		r.Put("/api/tracker/{id}", trackerHandler.Update)
		r.Delete("/api/tracker/{id}", trackerHandler.Delete)
		r.Post("/api/tracker/{id}/stage", trackerHandler.AdvanceStage)
		r.Get("/api/tracker/{id}/progress", trackerHandler.GetProgression)
	})

	// Start the offer refresh scheduler
	if offerScheduler != nil {
		if err := offerScheduler.Start(); err != nil {
			logger.Error("Failed to start offer scheduler", slog.String("error", err.Error()))
		} else {
			logger.Info("Offer scheduler started",
				slog.String("schedule", cfg.OfferRefreshSchedule),
				slog.Duration("timeout", cfg.OfferRefreshTimeout),
			)
			// Warm the cache so the first comparison does not wait on the feed
			offerScheduler.RunNow()
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	// Create server
	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		// Stop scheduler first
		if offerScheduler != nil {
			ctx := offerScheduler.Stop()
			<-ctx.Done()
			logger.Info("Scheduler stopped")
		}

		// Shutdown HTTP server
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Server failed: %v", err)
	}
}
