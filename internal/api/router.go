package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api/middleware"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/config"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, investmentService *service.InvestmentService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService, investmentService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.With(custommiddleware.APIKeyMiddleware).Post("/reset", systemHandler.Reset)
		})

		r.Route("/investment", func(r chi.Router) {
			investmentHandler := handlers.NewInvestmentHandler(investmentService)
			r.Get("/", investmentHandler.ListInvestments)
			r.Post("/", investmentHandler.CreateInvestment)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateIDMiddleware)
				r.Get("/", investmentHandler.GetInvestment)
				r.Get("/history", investmentHandler.GetSaleHistory)
				r.Put("/sale", investmentHandler.RecordSale)
			})
		})
	})

	return r
}
