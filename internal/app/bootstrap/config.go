// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// devSessionKey and devAdminKey are the out-of-the-box secrets. They make
// local development frictionless and are rejected in prod by ValidateConfig.
const (
	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
	devAdminKey   = "dev-admin-key"
)

// appConfigKeys defines the configuration keys for StudySphere.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: STUDYSPHERE_MONGO_URI, STUDYSPHERE_ADMIN_KEY, etc.
//   - Command-line flags: --mongo_uri, --admin_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "studysphere", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "studysphere-session", Desc: "Session cookie name"},
	{Name: "admin_key", Default: devAdminKey, Desc: "Admin console shared secret"},

	{Name: "gemini_api_key", Default: "", Desc: "Gemini API key (empty disables the assistant)"},
	{Name: "gemini_model", Default: "gemini-3-pro-preview", Desc: "Gemini model for chat and vision"},

	{Name: "watch_poll_interval", Default: "10s", Desc: "Catalog snapshot polling cadence when change streams are unavailable"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, STUDYSPHERE_* for app), and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "STUDYSPHERE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:  appValues.String("session_key"),
		SessionName: appValues.String("session_name"),
		AdminKey:    appValues.String("admin_key"),

		GeminiAPIKey: appValues.String("gemini_api_key"),
		GeminiModel:  appValues.String("gemini_model"),

		WatchPollInterval: appValues.Duration("watch_poll_interval", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// StudySphere validates the MongoDB URI format to catch configuration errors
// before attempting to connect, and refuses to start in prod with the dev
// secrets still in place.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters")
	}
	if appCfg.AdminKey == "" {
		return fmt.Errorf("admin_key is required")
	}

	if coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey {
			return fmt.Errorf("session_key must be changed from the dev default in prod")
		}
		if appCfg.AdminKey == devAdminKey {
			return fmt.Errorf("admin_key must be changed from the dev default in prod")
		}
		if appCfg.GeminiAPIKey == "" {
			logger.Warn("no gemini_api_key configured; assistant will serve placeholder replies")
		}
	}

	if appCfg.WatchPollInterval <= 0 {
		return fmt.Errorf("watch_poll_interval must be positive")
	}

	return nil
}
