// internal/app/features/presence/routes.go
package presence

import "github.com/go-chi/chi/v5"

// Register mounts the presence endpoints directly on the parent router; they
// live at the /api root rather than under a shared prefix.
func Register(r chi.Router, h *Handler) {
	r.Post("/heartbeat", h.ServeHeartbeat)
	r.Get("/live-count", h.ServeLiveCount)
}
