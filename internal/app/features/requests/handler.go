// internal/app/features/requests/handler.go
package requests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	requeststore "github.com/dalemusser/studysphere/internal/app/store/requests"
	"github.com/dalemusser/studysphere/internal/app/system/respond"
	"github.com/dalemusser/studysphere/internal/app/system/sanitize"
	"github.com/dalemusser/studysphere/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the public resource-request endpoints: students submit
// requests and can see the queue, including each request's status.
type Handler struct {
	Requests *requeststore.Store
	Log      *zap.Logger
}

// NewHandler creates a requests Handler.
func NewHandler(store *requeststore.Store, logger *zap.Logger) *Handler {
	return &Handler{Requests: store, Log: logger}
}

// ServeList handles GET /api/requests.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Requests.List(ctx)
	if err != nil {
		h.Log.Error("list requests failed", zap.Error(err))
		respond.StoreUnavailable(w)
		return
	}
	respond.JSON(w, http.StatusOK, ListResponse{Requests: list})
}

// ServeCreate handles POST /api/requests.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Requests.Create(ctx, sanitize.Text(req.Title), sanitize.Text(req.Details))
	if err != nil {
		if errors.Is(err, requeststore.ErrValidation) {
			respond.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.Log.Error("create request failed", zap.Error(err))
		respond.StoreUnavailable(w)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}
