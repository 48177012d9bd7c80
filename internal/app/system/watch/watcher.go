// internal/app/system/watch/watcher.go
package watch

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DefaultPollInterval is how often a Watcher re-reads its collection when
// change streams are not available (standalone mongod, the common small
// deployment for this app).
const DefaultPollInterval = 5 * time.Second

// Watcher keeps a Stream fed with full snapshots of one Mongo collection.
//
// It prefers a change stream (push, immediate) and falls back to interval
// polling when the server refuses to open one. Either way every detected
// change triggers a full re-read sorted by sortField descending, so
// subscribers always see complete, most-recent snapshots and rapid writes
// coalesce naturally. Intermediate states may be skipped; that matches the
// store contract of "eventually consistent with the latest write".
type Watcher[T any] struct {
	coll      *mongo.Collection
	stream    *Stream[T]
	sortField string
	interval  time.Duration
	fallback  []T // published when the first read fails; nil disables
	log       *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher feeding stream from coll. fallback, when
// non-nil, is published if the collection cannot be read or is empty, so the
// feed is never empty-and-broken on first load.
func NewWatcher[T any](coll *mongo.Collection, stream *Stream[T], sortField string, fallback []T, logger *zap.Logger) *Watcher[T] {
	return &Watcher[T]{
		coll:      coll,
		stream:    stream,
		sortField: sortField,
		interval:  DefaultPollInterval,
		fallback:  fallback,
		log:       logger,
	}
}

// SetPollInterval overrides the fallback polling cadence. Call before Start.
func (w *Watcher[T]) SetPollInterval(d time.Duration) { w.interval = d }

// Start publishes an initial snapshot and begins watching in the background.
func (w *Watcher[T]) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.refresh(ctx)

	w.wg.Add(1)
	go w.run(ctx)
}

// Stop tears down the background goroutine and waits for it to exit.
func (w *Watcher[T]) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Watcher[T]) run(ctx context.Context) {
	defer w.wg.Done()

	cs, err := w.coll.Watch(ctx, mongo.Pipeline{})
	if err == nil {
		defer cs.Close(context.Background())
		w.log.Info("watching collection via change stream",
			zap.String("collection", w.coll.Name()))
		for cs.Next(ctx) {
			// The event payload is irrelevant; any change invalidates the
			// snapshot. Drain whatever queued up before re-reading.
			for cs.TryNext(ctx) {
			}
			w.refresh(ctx)
		}
		if ctx.Err() != nil {
			return
		}
		w.log.Warn("change stream ended, falling back to polling",
			zap.String("collection", w.coll.Name()),
			zap.Error(cs.Err()))
	} else {
		w.log.Info("change streams unavailable, polling instead",
			zap.String("collection", w.coll.Name()),
			zap.Error(err))
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

// refresh re-reads the full collection and publishes it. Read failures keep
// the previous snapshot (or publish the fallback when nothing was ever
// delivered); they never tear the watcher down.
func (w *Watcher[T]) refresh(ctx context.Context) {
	rctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOpts := options.Find()
	if w.sortField != "" {
		findOpts.SetSort(bson.D{{Key: w.sortField, Value: -1}})
	}

	cur, err := w.coll.Find(rctx, bson.M{}, findOpts)
	if err != nil {
		w.publishFallback(err)
		return
	}
	defer cur.Close(rctx)

	var items []T
	if err := cur.All(rctx, &items); err != nil {
		w.publishFallback(err)
		return
	}

	if len(items) == 0 && w.fallback != nil {
		w.stream.Publish(w.fallback)
		return
	}
	w.stream.Publish(items)
}

func (w *Watcher[T]) publishFallback(err error) {
	if _, delivered := w.stream.Latest(); delivered {
		w.log.Warn("snapshot refresh failed, keeping previous snapshot",
			zap.String("collection", w.coll.Name()), zap.Error(err))
		return
	}
	w.log.Warn("initial snapshot read failed",
		zap.String("collection", w.coll.Name()), zap.Error(err))
	if w.fallback != nil {
		w.stream.Publish(w.fallback)
	}
}
