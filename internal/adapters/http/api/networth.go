package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/skyforge/networth/internal/adapters/itemjson"
)

// NetworthHandler handles valuation requests.
type NetworthHandler struct {
	deps         Dependencies
	maxBodyBytes int64
	maxBatchSize int
}

// NewNetworthHandler creates a new valuation handler.
func NewNetworthHandler(deps Dependencies, maxBodyBytes int64, maxBatchSize int) *NetworthHandler {
	return &NetworthHandler{deps: deps, maxBodyBytes: maxBodyBytes, maxBatchSize: maxBatchSize}
}

// HandleValue handles POST /networth with one item document.
func (h *NetworthHandler) HandleValue(w http.ResponseWriter, r *http.Request) {
	const op = "api.value"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	body, err := h.readBody(w, r)
	if err != nil {
		writeError(w, statusForBodyError(err), "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	item, err := itemjson.Decode(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	v, err := h.deps.Value(r.Context(), item)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// HandleBatch handles POST /networth/batch with an array of item documents
// or {"items": [...]}.
func (h *NetworthHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.value_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	body, err := h.readBody(w, r)
	if err != nil {
		writeError(w, statusForBodyError(err), "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	items, err := itemjson.DecodeMany(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(items) > h.maxBatchSize {
		err := fmt.Errorf("%d items, limit %d", len(items), h.maxBatchSize)
		writeError(w, http.StatusRequestEntityTooLarge, "batch_too_large", WrapKind(op, ErrBatchTooLarge, err))
		return
	}

	res, err := h.deps.ValueBatch(r.Context(), items)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *NetworthHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}
	return body, nil
}

func statusForBodyError(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
