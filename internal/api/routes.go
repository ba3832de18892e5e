package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Position routes. Literal paths are registered before the {symbol}
	// variable so "summary" and "refresh" never match as symbols.
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/positions", handler.GetPositions).Methods("GET")
	api.HandleFunc("/positions/summary", handler.GetSummary).Methods("GET")
	api.HandleFunc("/positions/refresh", handler.RefreshPositions).Methods("POST")
	api.HandleFunc("/positions/{symbol}", handler.GetPosition).Methods("GET")

	return r
}
