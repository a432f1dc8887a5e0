package api

import (
	"net/http"
	"strings"
)

// CatalogHandler exposes the priced keys of the current snapshot.
type CatalogHandler struct {
	deps Dependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps Dependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

type keysResponse struct {
	Prefix string   `json:"prefix"`
	Count  int      `json:"count"`
	Keys   []string `json:"keys"`
}

// HandleKeys handles GET /catalog/keys?prefix=.
func (h *CatalogHandler) HandleKeys(w http.ResponseWriter, r *http.Request) {
	const op = "api.catalog_keys"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	prefix := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("prefix")))
	if prefix == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	keys, err := h.deps.CatalogKeys(prefix)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, keysResponse{Prefix: prefix, Count: len(keys), Keys: keys})
}
