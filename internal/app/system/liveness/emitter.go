// internal/app/system/liveness/emitter.go
package liveness

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BeatFunc writes one heartbeat. Implementations upsert the caller's
// presence record with a server-assigned timestamp.
type BeatFunc func(ctx context.Context) error

// Emitter keeps a client's presence record fresh: one beat immediately on
// Start, then one every HeartbeatInterval until Stop. Beats are
// fire-and-forget; a failed write (offline, store down) is logged and the
// ticker carries on, so the next scheduled attempt proceeds regardless.
type Emitter struct {
	beat     BeatFunc
	interval time.Duration
	log      *zap.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewEmitter creates a heartbeat emitter with the standard interval.
func NewEmitter(beat BeatFunc, logger *zap.Logger) *Emitter {
	return &Emitter{
		beat:     beat,
		interval: HeartbeatInterval,
		log:      logger,
		stopCh:   make(chan struct{}),
	}
}

// SetInterval overrides the beat cadence. Call before Start; tests only.
func (e *Emitter) SetInterval(d time.Duration) { e.interval = d }

// Start fires the initial beat and launches the periodic loop.
func (e *Emitter) Start(ctx context.Context) {
	e.fire(ctx)

	e.wg.Add(1)
	go e.run(ctx)
	e.log.Info("heartbeat emitter started", zap.Duration("interval", e.interval))
}

// Stop clears the timer and waits for the loop to exit. Safe to call more
// than once.
func (e *Emitter) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
	e.wg.Wait()
	e.log.Info("heartbeat emitter stopped")
}

func (e *Emitter) run(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.fire(ctx)
		}
	}
}

func (e *Emitter) fire(ctx context.Context) {
	bctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.beat(bctx); err != nil {
		// Not user-visible and never fatal; presence just goes stale until
		// a later beat lands.
		e.log.Warn("heartbeat write failed", zap.Error(err))
	}
}
