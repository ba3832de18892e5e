package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/trogers1052/position-service/internal/models"
)

// PositionStore is the database surface the API reads from
type PositionStore interface {
	GetAllPositions() ([]*models.PositionRecord, error)
	GetPositionBySymbol(symbol string) (*models.PositionRecord, error)
}

// SnapshotCache is the read-through cache in front of the store. May be
// nil when no cache is configured.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context) ([]*models.PositionRecord, error)
	SetSnapshot(ctx context.Context, records []*models.PositionRecord) error
}

// RefreshPublisher publishes refresh requests for the upstream collector
type RefreshPublisher interface {
	PublishRefreshRequested(ctx context.Context, source string) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store     PositionStore
	cache     SnapshotCache
	publisher RefreshPublisher
	source    string
}

// NewHandler creates a new Handler
func NewHandler(store PositionStore, cache SnapshotCache, publisher RefreshPublisher, source string) *Handler {
	return &Handler{
		store:     store,
		cache:     cache,
		publisher: publisher,
		source:    source,
	}
}

// positionResponse augments a stored record with the time-dependent
// day count, which cannot be precomputed at normalization time.
type positionResponse struct {
	*models.PositionRecord
	DaysToExpiration *int `json:"days_to_expiration,omitempty"`
}

func toResponse(r *models.PositionRecord) positionResponse {
	resp := positionResponse{PositionRecord: r}
	if r.Expiration != nil {
		opt := models.Option{OptionContract: models.OptionContract{Expiration: *r.Expiration}}
		if days, ok := opt.DaysToExpiration(); ok {
			resp.DaysToExpiration = &days
		}
	}
	return resp
}

// GetPositions handles GET /api/v1/positions
func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadPositions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	responses := make([]positionResponse, len(records))
	for i, record := range records {
		responses[i] = toResponse(record)
	}
	respondJSON(w, http.StatusOK, responses)
}

// GetPosition handles GET /api/v1/positions/{symbol}
func (h *Handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	symbol := vars["symbol"]

	record, err := h.store.GetPositionBySymbol(symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, toResponse(record))
}

// GetSummary handles GET /api/v1/positions/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadPositions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	totalValue := decimal.Zero
	totalPnl := decimal.Zero
	stocks, options := 0, 0
	for _, record := range records {
		totalValue = totalValue.Add(record.CurrentValue)
		totalPnl = totalPnl.Add(record.ProfitLoss)
		if record.SecType == models.SecTypeStock {
			stocks++
		} else {
			options++
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"positions":           len(records),
		"stocks":              stocks,
		"options":             options,
		"total_current_value": totalValue,
		"total_profit_loss":   totalPnl,
	})
}

// RefreshPositions handles POST /api/v1/positions/refresh
func (h *Handler) RefreshPositions(w http.ResponseWriter, r *http.Request) {
	if h.publisher == nil {
		http.Error(w, "refresh not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.publisher.PublishRefreshRequested(r.Context(), h.source); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status": "refresh requested",
		"source": h.source,
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// loadPositions reads through the cache when one is configured
func (h *Handler) loadPositions(ctx context.Context) ([]*models.PositionRecord, error) {
	if h.cache != nil {
		if records, err := h.cache.GetSnapshot(ctx); err == nil {
			return records, nil
		}
	}

	records, err := h.store.GetAllPositions()
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.SetSnapshot(ctx, records); err != nil {
			log.Printf("Failed to cache positions snapshot: %v", err)
		}
	}
	return records, nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
