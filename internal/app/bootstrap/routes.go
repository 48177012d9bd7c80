// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/dalemusser/studysphere/internal/app/features/admin"
	assistantfeature "github.com/dalemusser/studysphere/internal/app/features/assistant"
	healthfeature "github.com/dalemusser/studysphere/internal/app/features/health"
	homefeature "github.com/dalemusser/studysphere/internal/app/features/home"
	presencefeature "github.com/dalemusser/studysphere/internal/app/features/presence"
	requestsfeature "github.com/dalemusser/studysphere/internal/app/features/requests"
	resourcesfeature "github.com/dalemusser/studysphere/internal/app/features/resources"
	streamfeature "github.com/dalemusser/studysphere/internal/app/features/stream"
	presencestore "github.com/dalemusser/studysphere/internal/app/store/presence"
	requeststore "github.com/dalemusser/studysphere/internal/app/store/requests"
	resourcestore "github.com/dalemusser/studysphere/internal/app/store/resources"
	"github.com/dalemusser/studysphere/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed, so the snapshot hubs and the live counter
// are already running.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.AdminKey, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	resources := resourcestore.New(deps.MongoDatabase)
	requests := requeststore.New(deps.MongoDatabase)
	presence := presencestore.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Service banner
	homeHandler := homefeature.NewHandler("studysphere", logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Public API
	r.Route("/api", func(api chi.Router) {
		resHandler := resourcesfeature.NewHandler(runtime.feed, resources, runtime.liveCounter, logger)
		api.Mount("/resources", resourcesfeature.Routes(resHandler))

		reqHandler := requestsfeature.NewHandler(requests, logger)
		api.Mount("/requests", requestsfeature.Routes(reqHandler))

		presHandler := presencefeature.NewHandler(presence, runtime.liveCounter, secure, logger)
		presencefeature.Register(api, presHandler)

		streamHandler := streamfeature.NewHandler(runtime.feed, runtime.liveCounter, logger)
		streamfeature.Register(api, streamHandler)

		aiHandler := assistantfeature.NewHandler(runtime.completer, logger)
		api.Mount("/assistant", assistantfeature.Routes(aiHandler))
	})

	// Admin console API (session gate inside)
	adminHandler := adminfeature.NewHandler(sessionMgr, resources, requests, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	return r, nil
}
