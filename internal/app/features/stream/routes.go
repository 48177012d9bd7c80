// internal/app/features/stream/routes.go
package stream

import "github.com/go-chi/chi/v5"

// Register mounts the event stream on the parent router at /stream.
func Register(r chi.Router, h *Handler) {
	r.Get("/stream", h.ServeStream)
}
