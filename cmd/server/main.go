package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/config"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/database"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/jobs"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/repository"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/service"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories and services
	investmentRepo := repository.NewInvestmentRepository(db)

	marketService := service.NewMarketDataService(yahoo.NewFinanceClient(), cfg.Market.QuoteCacheTTL)
	investmentService := service.NewInvestmentService(investmentRepo, marketService, time.Now)
	systemService := service.NewSystemService(db)

	// Schedule the quote cache refresh
	scheduler := cron.New()
	_, err = scheduler.AddJob(cfg.Market.QuoteRefreshSchedule, jobs.NewQuoteRefreshJob(investmentRepo, marketService))
	if err != nil {
		log.Fatalf("Failed to schedule quote refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, investmentService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
