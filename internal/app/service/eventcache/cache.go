package eventcache

import (
	"context"
	"time"

	"github.com/hevolife/bookingfast/pkg/config"
	types "github.com/hevolife/bookingfast/pkg/types"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

// Cache is a process-local, time-bounded memo of handled payment events.
// It is a best-effort optimization, not the system of record: the durable
// idempotency guarantee is the event id embedded in the persisted
// transaction note. Entries are written before the slow persistence path
// begins so two near-simultaneous redeliveries collapse to one in-flight
// attempt; a persistence failure releases the entry so a legitimate retry
// is not starved.
type Cache struct {
	c   *gocache.Cache
	ttl time.Duration
	log *zap.SugaredLogger
}

func New(cfg *config.Config, log *zap.SugaredLogger) *Cache {
	ttl := time.Duration(cfg.Stripe.EventCacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	// cleanup interval 0: the sweep is owned by the fx lifecycle below,
	// not by a go-cache janitor goroutine.
	return &Cache{c: gocache.New(ttl, 0), ttl: ttl, log: log}
}

// Check returns the memoized outcome for an event id. A found entry with a
// nil outcome means the event is reserved and still in flight.
func (c *Cache) Check(eventID string) (*types.WebhookOutcome, bool) {
	v, found := c.c.Get(eventID)
	if !found {
		return nil, false
	}
	out, _ := v.(*types.WebhookOutcome)
	return out, true
}

// Reserve marks an event as in-flight. It returns false when the event is
// already present (completed or reserved by a concurrent delivery).
func (c *Cache) Reserve(eventID string) bool {
	return c.c.Add(eventID, (*types.WebhookOutcome)(nil), c.ttl) == nil
}

// Complete stores the final outcome for a reserved event.
func (c *Cache) Complete(eventID string, out *types.WebhookOutcome) {
	c.c.Set(eventID, out, c.ttl)
}

// Release rolls back a reservation after a persistence failure.
func (c *Cache) Release(eventID string) {
	c.c.Delete(eventID)
}

// PurgeExpired drops expired entries. Exposed as an explicit operation;
// production sweeping is driven by the lifecycle hook.
func (c *Cache) PurgeExpired() {
	c.c.DeleteExpired()
}

// Len is used by tests and the metrics endpoint.
func (c *Cache) Len() int {
	return c.c.ItemCount()
}

func runSweeper(lc fx.Lifecycle, c *Cache, log *zap.SugaredLogger) {
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				t := time.NewTicker(sweepInterval)
				defer t.Stop()
				for {
					select {
					case <-t.C:
						c.PurgeExpired()
					case <-done:
						return
					}
				}
			}()
			log.Infow("event cache sweeper started", "ttl", c.ttl.String())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(runSweeper),
)
