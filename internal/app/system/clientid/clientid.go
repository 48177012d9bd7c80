// internal/app/system/clientid/clientid.go
package clientid

import (
	"net/http"

	"github.com/google/uuid"
)

// CookieName carries the anonymous client token. The token is
// client-generated in spirit: the server mints it on first contact and the
// browser holds it durably, so the same browser keeps the same presence
// record across sessions.
const CookieName = "studysphere_client_id"

// maxAge keeps the token for a year of inactivity.
const maxAge = 365 * 24 * 60 * 60

// Provider yields a stable opaque token for the calling client. The HTTP
// implementation below backs it with a long-lived cookie; the Go API client
// package provides file- and memory-backed implementations.
type Provider interface {
	GetOrCreate() (string, error)
}

// FromRequest returns the request's client token, minting and setting a new
// one when absent. The returned bool is true when a new token was issued.
func FromRequest(w http.ResponseWriter, r *http.Request, secure bool) (string, bool) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, false
	}

	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, true
}
