// internal/app/features/resources/routes.go
package resources

import "github.com/go-chi/chi/v5"

// Routes returns the public resource feed subrouter, mounted under
// /api/resources.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/{id}/vote", h.ServeVote)
	r.Post("/{id}/view", h.ServeView)
	return r
}
