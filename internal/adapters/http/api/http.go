// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skyforge/networth/internal/domain/model"
	"github.com/skyforge/networth/internal/domain/types"
	"github.com/skyforge/networth/pkg/logger"
)

// Default request limits.
const (
	defaultMaxBodyBytes = 8 << 20
	defaultMaxBatchSize = 1000
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Value values one item.
	Value(ctx context.Context, item *model.Item) (*Valuation, error)

	// ValueBatch values items, returning results in input order.
	ValueBatch(ctx context.Context, items []*model.Item) (*BatchResult, error)

	// CatalogKeys lists priced keys starting with prefix.
	CatalogKeys(prefix string) ([]string, error)
}

// Valuation mirrors the shape returned for one item.
type Valuation = types.Valuation

// BatchResult mirrors the shape returned for a batch.
type BatchResult = types.BatchResult

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	networthHandler *NetworthHandler
	catalogHandler  *CatalogHandler

	logger logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := settings{
		maxBodyBytes: defaultMaxBodyBytes,
		maxBatchSize: defaultMaxBatchSize,
		logger:       logger.Get().Named("api"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		networthHandler: NewNetworthHandler(deps, cfg.maxBodyBytes, cfg.maxBatchSize),
		catalogHandler:  NewCatalogHandler(deps),
		logger:          cfg.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/catalog/keys", MetricsMiddleware(s.catalogHandler.HandleKeys, "catalog_keys"))
	mux.HandleFunc("/networth/batch", s.wrap(s.networthHandler.HandleBatch, "networth_batch"))
	mux.HandleFunc("/networth", s.wrap(s.networthHandler.HandleValue, "networth"))
}

// wrap applies request id and metrics middleware to valuation routes.
func (s *Server) wrap(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(LoggingMiddleware(next, s.logger), endpoint))
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: w.Header().Get(headerRequestID)})
}

// writeServiceError maps errors returned by Dependencies to a status code.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, types.ErrBatchTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "batch_too_large", WrapKind(op, ErrBatchTooLarge, err))
	case errors.Is(err, types.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "timeout", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}
