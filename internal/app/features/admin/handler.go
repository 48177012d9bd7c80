// internal/app/features/admin/handler.go
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	requeststore "github.com/dalemusser/studysphere/internal/app/store/requests"
	resourcestore "github.com/dalemusser/studysphere/internal/app/store/resources"
	"github.com/dalemusser/studysphere/internal/app/system/auth"
	"github.com/dalemusser/studysphere/internal/app/system/respond"
	"github.com/dalemusser/studysphere/internal/app/system/sanitize"
	"github.com/dalemusser/studysphere/internal/app/system/timeouts"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the admin console API: the session gate plus curation of
// resources and requests.
type Handler struct {
	Sessions  *auth.SessionManager
	Resources *resourcestore.Store
	Requests  *requeststore.Store
	Log       *zap.Logger
}

// NewHandler creates an admin Handler.
func NewHandler(sessions *auth.SessionManager, res *resourcestore.Store, req *requeststore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Sessions:  sessions,
		Resources: res,
		Requests:  req,
		Log:       logger,
	}
}

// ServeLogin handles POST /admin/login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.Sessions.SignInAdmin(w, r, req.Key); err != nil {
		if errors.Is(err, auth.ErrBadAdminKey) {
			respond.Error(w, http.StatusUnauthorized, "invalid admin key")
			return
		}
		h.Log.Error("admin sign-in failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "sign-in failed")
		return
	}
	respond.JSON(w, http.StatusOK, SessionResponse{Admin: true})
}

// ServeLogout handles POST /admin/logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.SignOutAdmin(w, r)
	respond.JSON(w, http.StatusOK, SessionResponse{Admin: false})
}

// ServeSession handles GET /admin/session so the console can restore state
// after a reload.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, SessionResponse{Admin: h.Sessions.IsAdmin(r)})
}

// ServeCreateResource handles POST /admin/resources.
func (h *Handler) ServeCreateResource(w http.ResponseWriter, r *http.Request) {
	var req CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Resources.Create(ctx, models.Resource{
		Title:        sanitize.Text(req.Title),
		Description:  sanitize.Text(req.Description),
		Type:         req.Type,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		Category:     sanitize.Text(req.Category),
	})
	if err != nil {
		h.writeStoreError(w, "create resource", err)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

// ServeDeleteResource handles DELETE /admin/resources/{id}.
func (h *Handler) ServeDeleteResource(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Resources.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, "delete resource", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServePinResource handles POST /admin/resources/{id}/pin.
func (h *Handler) ServePinResource(w http.ResponseWriter, r *http.Request) {
	var req PinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Resources.SetPinned(ctx, chi.URLParam(r, "id"), req.Pinned); err != nil {
		h.writeStoreError(w, "pin resource", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeSetRequestStatus handles POST /admin/requests/{id}/status.
func (h *Handler) ServeSetRequestStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Requests.SetStatus(ctx, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeRequestStoreError(w, "set request status", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeDeleteRequest handles DELETE /admin/requests/{id}.
func (h *Handler) ServeDeleteRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Requests.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.writeRequestStoreError(w, "delete request", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, resourcestore.ErrProtectedRecord):
		respond.Error(w, http.StatusUnprocessableEntity, "sample records cannot be modified")
	case errors.Is(err, resourcestore.ErrValidation):
		respond.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, resourcestore.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "resource not found")
	default:
		h.Log.Error("admin resource call failed", zap.String("op", op), zap.Error(err))
		respond.StoreUnavailable(w)
	}
}

func (h *Handler) writeRequestStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, requeststore.ErrValidation):
		respond.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, requeststore.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "request not found")
	default:
		h.Log.Error("admin request call failed", zap.String("op", op), zap.Error(err))
		respond.StoreUnavailable(w)
	}
}
