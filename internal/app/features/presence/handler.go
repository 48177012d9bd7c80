// internal/app/features/presence/handler.go
package presence

import (
	"context"
	"net/http"

	presencestore "github.com/dalemusser/studysphere/internal/app/store/presence"
	"github.com/dalemusser/studysphere/internal/app/system/clientid"
	"github.com/dalemusser/studysphere/internal/app/system/respond"
	"github.com/dalemusser/studysphere/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// LiveCounter is the slice of the liveness counter this feature needs.
type LiveCounter interface {
	Active() int
}

// Handler records presence heartbeats and reports the live visitor estimate.
type Handler struct {
	Presence     *presencestore.Store
	Live         LiveCounter
	SecureCookie bool
	Log          *zap.Logger
}

// NewHandler creates a presence Handler. secureCookie controls the Secure
// flag on the client identity cookie.
func NewHandler(store *presencestore.Store, live LiveCounter, secureCookie bool, logger *zap.Logger) *Handler {
	return &Handler{
		Presence:     store,
		Live:         live,
		SecureCookie: secureCookie,
		Log:          logger,
	}
}

// ServeHeartbeat handles POST /api/heartbeat.
//
// Heartbeats are fire-and-forget: the caller always gets 200, and a store
// failure is only logged. A dropped beat just makes the live count lag by one
// until the next interval.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	token, created := clientid.FromRequest(w, r, h.SecureCookie)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Presence.Heartbeat(ctx, token); err != nil {
		h.Log.Warn("presence heartbeat failed",
			zap.Bool("new_client", created),
			zap.Error(err))
	}
	respond.JSON(w, http.StatusOK, HeartbeatResponse{OK: true})
}

// ServeLiveCount handles GET /api/live-count.
func (h *Handler) ServeLiveCount(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, LiveCountResponse{Count: h.Live.Active()})
}
