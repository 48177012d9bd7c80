// internal/app/system/auth/auth.go
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session value keys.
const isAdminKey = "is_admin"

// ErrBadAdminKey is returned by SignInAdmin when the presented key does not
// match the configured one.
var ErrBadAdminKey = errors.New("admin key mismatch")

// SessionManager wraps the cookie session store and the admin console gate.
//
// The admin gate is deliberately a static shared-secret compare: the console
// has exactly one curator role and no user accounts. The secret is compared
// in constant time and success is remembered in the session cookie.
type SessionManager struct {
	store       *sessions.CookieStore
	sessionName string
	adminKey    string
	log         *zap.Logger
}

// NewSessionManager builds the session store. sessionKey signs cookies;
// adminKey is the shared admin console secret. secure controls the cookie
// Secure flag (on in prod).
func NewSessionManager(sessionKey, sessionName, adminKey string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if len(sessionKey) < 32 {
		return nil, errors.New("session key must be at least 32 bytes")
	}
	if adminKey == "" {
		return nil, errors.New("admin key is required")
	}

	// Signing key only, derived from config: every process with the same
	// key validates the same cookies, so sessions survive restarts.
	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{
		store:       store,
		sessionName: sessionName,
		adminKey:    adminKey,
		log:         logger,
	}, nil
}

// SignInAdmin checks the presented key and, on match, marks the session.
func (m *SessionManager) SignInAdmin(w http.ResponseWriter, r *http.Request, key string) error {
	if subtle.ConstantTimeCompare([]byte(key), []byte(m.adminKey)) != 1 {
		return ErrBadAdminKey
	}

	sess, _ := m.store.Get(r, m.sessionName)
	sess.Values[isAdminKey] = true
	if err := sess.Save(r, w); err != nil {
		m.log.Error("admin session save failed", zap.Error(err))
		return err
	}
	return nil
}

// SignOutAdmin clears the admin flag.
func (m *SessionManager) SignOutAdmin(w http.ResponseWriter, r *http.Request) {
	sess, _ := m.store.Get(r, m.sessionName)
	delete(sess.Values, isAdminKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		m.log.Warn("admin session clear failed", zap.Error(err))
	}
}

// IsAdmin reports whether the request carries an admin session.
func (m *SessionManager) IsAdmin(r *http.Request) bool {
	sess, err := m.store.Get(r, m.sessionName)
	if err != nil {
		return false
	}
	ok, _ := sess.Values[isAdminKey].(bool)
	return ok
}

// RequireAdmin guards admin routes: non-admin callers get a plain 401.
func (m *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.IsAdmin(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
