// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops the push pipeline and tears down the DB connection.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if runtime.liveCounter != nil {
		runtime.liveCounter.Stop()
	}
	if runtime.feedWatcher != nil {
		runtime.feedWatcher.Stop()
	}
	if runtime.presenceWatcher != nil {
		runtime.presenceWatcher.Stop()
	}
	if runtime.cancel != nil {
		runtime.cancel()
	}

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
