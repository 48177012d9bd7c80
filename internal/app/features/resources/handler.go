// internal/app/features/resources/handler.go
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	resourcestore "github.com/dalemusser/studysphere/internal/app/store/resources"
	"github.com/dalemusser/studysphere/internal/app/system/feed"
	"github.com/dalemusser/studysphere/internal/app/system/respond"
	"github.com/dalemusser/studysphere/internal/app/system/timeouts"
	"github.com/dalemusser/studysphere/internal/app/system/watch"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LiveCounter is the slice of the liveness counter this feature needs.
type LiveCounter interface {
	Active() int
}

// Handler serves the public resource feed and the per-resource vote/view
// operations.
type Handler struct {
	Feed      *watch.Stream[models.Resource]
	Resources *resourcestore.Store
	Live      LiveCounter
	Log       *zap.Logger
}

// NewHandler creates a resources Handler.
func NewHandler(feedStream *watch.Stream[models.Resource], store *resourcestore.Store, live LiveCounter, logger *zap.Logger) *Handler {
	return &Handler{
		Feed:      feedStream,
		Resources: store,
		Live:      live,
		Log:       logger,
	}
}

// ServeList handles GET /api/resources.
//
// The feed is computed from the latest store snapshot, never by querying the
// store per request. An empty resource list with loading=false means "no
// matches"; loading=true means the first snapshot has not arrived yet.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := feed.Query{
		Search:   query.Get(r, "search"),
		Category: query.Get(r, "category"),
		Sort:     query.Get(r, "sort"),
	}

	snapshot, delivered := h.Feed.Latest()

	resp := ListResponse{
		Loading:    !delivered,
		Resources:  feed.Render(snapshot, q),
		Categories: feed.Categories(snapshot),
		LiveCount:  h.Live.Active(),
	}
	respond.JSON(w, http.StatusOK, resp)
}

// ServeVote handles POST /api/resources/{id}/vote.
func (h *Handler) ServeVote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Resources.Vote(ctx, id, req.Kind, req.Retract)
	if err != nil {
		h.writeStoreError(w, "vote", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeView handles POST /api/resources/{id}/view. View counting is
// best-effort bookkeeping; protected and missing records still report their
// reason, but the UI treats any failure as ignorable.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Resources.IncrementView(ctx, id); err != nil {
		h.writeStoreError(w, "view", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, op, id string, err error) {
	switch {
	case errors.Is(err, resourcestore.ErrProtectedRecord):
		respond.Error(w, http.StatusUnprocessableEntity, "sample records cannot be modified")
	case errors.Is(err, resourcestore.ErrValidation):
		respond.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, resourcestore.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "resource not found")
	default:
		h.Log.Error("resource store call failed",
			zap.String("op", op),
			zap.String("resource_id", id),
			zap.Error(err))
		respond.StoreUnavailable(w)
	}
}
