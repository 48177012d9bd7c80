// internal/app/system/liveness/counter.go
package liveness

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/studysphere/internal/app/system/watch"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"go.uber.org/zap"
)

// recountInterval re-derives the count between presence snapshots so it
// decays when clients go quiet without any new writes arriving.
const recountInterval = 15 * time.Second

// Counter derives the live user count from the presence snapshot stream.
// The count is recomputed, with a fresh wall-clock read, on every snapshot
// and on a short tick.
type Counter struct {
	stream *watch.Stream[models.Presence]
	now    func() time.Time
	log    *zap.Logger

	mu      sync.Mutex
	records []models.Presence
	active  int

	cancelSub func()
	cancelRun context.CancelFunc
	wg        sync.WaitGroup
}

// NewCounter creates a Counter reading from stream. It does not subscribe
// until Start.
func NewCounter(stream *watch.Stream[models.Presence], logger *zap.Logger) *Counter {
	return &Counter{
		stream: stream,
		now:    time.Now,
		log:    logger,
	}
}

// SetNowFunc replaces the wall-clock source. Call before Start; tests only.
func (c *Counter) SetNowFunc(now func() time.Time) { c.now = now }

// Start subscribes to the presence stream and begins recomputing.
func (c *Counter) Start(ctx context.Context) {
	ctx, c.cancelRun = context.WithCancel(ctx)

	ch, cancel := c.stream.Subscribe()
	c.cancelSub = cancel

	if records, ok := c.stream.Latest(); ok {
		c.recompute(records)
	}

	c.wg.Add(1)
	go c.run(ctx, ch)
	c.log.Info("live count aggregator started")
}

// Stop unsubscribes from the stream and waits for the loop to exit.
func (c *Counter) Stop() {
	if c.cancelRun != nil {
		c.cancelRun()
	}
	if c.cancelSub != nil {
		c.cancelSub()
	}
	c.wg.Wait()
	c.log.Info("live count aggregator stopped")
}

// Active returns the most recently derived live count.
func (c *Counter) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Counter) run(ctx context.Context, ch <-chan []models.Presence) {
	defer c.wg.Done()

	ticker := time.NewTicker(recountInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case records, ok := <-ch:
			if !ok {
				return
			}
			c.recompute(records)
		case <-ticker.C:
			c.mu.Lock()
			records := c.records
			c.mu.Unlock()
			c.recompute(records)
		}
	}
}

func (c *Counter) recompute(records []models.Presence) {
	active := CountActive(records, c.now())
	c.mu.Lock()
	c.records = records
	c.active = active
	c.mu.Unlock()
}
