// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api/response"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/validation"
)

// ValidateIDMiddleware validates that the id URL parameter is present and is
// a positive integer. Returns 400 Bad Request if the ID is missing or invalid.
// Apply it to routes that carry an investment ID in the URL path.
//
// Example usage in router:
//
//	r.Route("/{id}", func(r chi.Router) {
//	    r.Use(middleware.ValidateIDMiddleware)
//	    r.Get("/", handler.GetInvestment)
//	})
func ValidateIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if id == "" {
			response.RespondError(w, http.StatusBadRequest, "valid investment ID is required", "")
			return
		}

		if _, err := validation.ValidateID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid investment ID", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
