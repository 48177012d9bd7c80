// internal/app/features/admin/routes.go
package admin

import "github.com/go-chi/chi/v5"

// Routes returns the admin subrouter, mounted under /admin. The session
// endpoints are open; everything else sits behind the admin gate.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.ServeLogin)
	r.Post("/logout", h.ServeLogout)
	r.Get("/session", h.ServeSession)

	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.RequireAdmin)

		r.Post("/resources", h.ServeCreateResource)
		r.Delete("/resources/{id}", h.ServeDeleteResource)
		r.Post("/resources/{id}/pin", h.ServePinResource)

		r.Post("/requests/{id}/status", h.ServeSetRequestStatus)
		r.Delete("/requests/{id}", h.ServeDeleteRequest)
	})

	return r
}
