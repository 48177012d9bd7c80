// internal/app/features/assistant/routes.go
package assistant

import "github.com/go-chi/chi/v5"

// Routes returns the assistant subrouter, mounted under /api/assistant.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/chat", h.ServeChat)
	r.Post("/vision", h.ServeVision)
	return r
}
