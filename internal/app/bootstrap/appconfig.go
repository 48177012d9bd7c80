// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging,
// CORS, timeouts). AppConfig is everything specific to StudySphere: the
// Mongo connection, the admin console secret, the Gemini credentials, and
// the knobs on the catalog push pipeline.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey  string // Secret key for signing session cookies (must be strong in production)
	SessionName string // Cookie name for sessions (default: studysphere-session)

	// Admin console shared secret. The console has a single curator role, so
	// access is one key rather than user accounts.
	AdminKey string

	// Gemini assistant configuration. An empty API key disables the
	// assistant; the endpoints then answer with placeholder replies.
	GeminiAPIKey string
	GeminiModel  string

	// WatchPollInterval is the snapshot polling cadence used when Mongo
	// change streams are unavailable (standalone deployments).
	WatchPollInterval time.Duration
}
