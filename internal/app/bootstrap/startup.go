// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/studysphere/internal/app/assistant"
	resourcestore "github.com/dalemusser/studysphere/internal/app/store/resources"
	"github.com/dalemusser/studysphere/internal/app/system/liveness"
	"github.com/dalemusser/studysphere/internal/app/system/watch"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// runtime holds the long-lived components started in Startup and consumed by
// BuildHandler and Shutdown. The hook contexts are startup-scoped, so these
// run on their own background context, canceled in Shutdown.
var runtime struct {
	cancel context.CancelFunc

	feed     *watch.Stream[models.Resource]
	presence *watch.Stream[models.Presence]

	feedWatcher     *watch.Watcher[models.Resource]
	presenceWatcher *watch.Watcher[models.Presence]
	liveCounter     *liveness.Counter

	completer assistant.Completer
}

// Startup builds the push pipeline: two change-stream watchers feed snapshot
// hubs (resources for the catalog feed and SSE stream, presence for the live
// counter), and the Gemini client is constructed once for the process.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	runCtx, cancel := context.WithCancel(context.Background())
	runtime.cancel = cancel

	runtime.feed = watch.NewStream[models.Resource]()
	runtime.feedWatcher = watch.NewWatcher(
		deps.MongoDatabase.Collection("resources"),
		runtime.feed,
		"added_at",
		resourcestore.Seed(), // catalog reads degrade to the demo records
		logger.Named("feed-watch"),
	)
	runtime.feedWatcher.SetPollInterval(appCfg.WatchPollInterval)
	runtime.feedWatcher.Start(runCtx)

	runtime.presence = watch.NewStream[models.Presence]()
	runtime.presenceWatcher = watch.NewWatcher(
		deps.MongoDatabase.Collection("presence"),
		runtime.presence,
		"last_seen",
		nil,
		logger.Named("presence-watch"),
	)
	runtime.presenceWatcher.SetPollInterval(appCfg.WatchPollInterval)
	runtime.presenceWatcher.Start(runCtx)

	runtime.liveCounter = liveness.NewCounter(runtime.presence, logger.Named("live-count"))
	runtime.liveCounter.Start(runCtx)

	svc, err := assistant.New(ctx, appCfg.GeminiAPIKey, appCfg.GeminiModel, logger.Named("assistant"))
	if err != nil {
		cancel()
		return err
	}
	runtime.completer = svc

	return nil
}
