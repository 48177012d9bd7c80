// internal/app/features/stream/handler.go
package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/studysphere/internal/app/system/respond"
	"github.com/dalemusser/studysphere/internal/app/system/watch"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"go.uber.org/zap"
)

// LiveCounter is the slice of the liveness counter this feature needs.
type LiveCounter interface {
	Active() int
}

// Handler pushes catalog snapshots and live-count updates to browsers over
// Server-Sent Events, the server half of the store's push subscription.
type Handler struct {
	Feed *watch.Stream[models.Resource]
	Live LiveCounter
	Log  *zap.Logger

	liveInterval time.Duration
}

// NewHandler creates a stream Handler.
func NewHandler(feedStream *watch.Stream[models.Resource], live LiveCounter, logger *zap.Logger) *Handler {
	return &Handler{
		Feed:         feedStream,
		Live:         live,
		Log:          logger,
		liveInterval: 15 * time.Second,
	}
}

// SetLiveInterval overrides how often live_count events are emitted. Tests
// use short intervals.
func (h *Handler) SetLiveInterval(d time.Duration) { h.liveInterval = d }

// ServeStream handles GET /api/stream.
//
// Events:
//
//	event: resources   data: the full resource snapshot (JSON array)
//	event: live_count  data: {"count": N}
//
// The current snapshot is replayed immediately on connect; afterwards every
// store change produces a resources event and the live count is re-sent on a
// ticker.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respond.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	snapshots, cancel := h.Feed.Subscribe()
	defer cancel()

	ticker := time.NewTicker(h.liveInterval)
	defer ticker.Stop()

	// Send the count up front so the client never waits a full tick for it.
	h.writeLiveCount(w, flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			h.writeEvent(w, flusher, "resources", snap)
		case <-ticker.C:
			h.writeLiveCount(w, flusher)
		}
	}
}

func (h *Handler) writeLiveCount(w http.ResponseWriter, flusher http.Flusher) {
	h.writeEvent(w, flusher, "live_count", map[string]int{"count": h.Live.Active()})
}

func (h *Handler) writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.Log.Error("sse marshal failed", zap.String("event", event), zap.Error(err))
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
