package queue

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// notifyChannel matches the pg_notify channel the order triggers publish on.
const notifyChannel = "order_changes"

// pollInterval is the backstop against missed notifications.
const pollInterval = 30 * time.Second

// Watcher keeps a current queue snapshot. Two independent triggers drive the
// same idempotent reload: LISTEN notifications on order changes and a fixed
// 30s poll. Reloads carry a sequence number so a slow, older reload can never
// overwrite a newer snapshot.
type Watcher struct {
	pool *pgxpool.Pool
	svc  Service

	mu      sync.Mutex
	latest  *Snapshot
	seq     uint64
	applied uint64
}

func NewWatcher(pool *pgxpool.Pool, svc Service) *Watcher {
	return &Watcher{pool: pool, svc: svc}
}

// Run blocks until ctx is canceled; the subscription and the poll timer are
// both released on teardown.
func (w *Watcher) Run(ctx context.Context) {
	w.reload(ctx)

	go w.listenLoop(ctx)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("queue watcher stopped")
			return
		case <-ticker.C:
			w.reload(ctx)
		}
	}
}

// Snapshot returns the latest snapshot, loading synchronously if the watcher
// has not produced one yet.
func (w *Watcher) Snapshot(ctx context.Context) (Snapshot, error) {
	w.mu.Lock()
	latest := w.latest
	w.mu.Unlock()

	if latest != nil {
		return *latest, nil
	}
	return w.svc.Load(ctx)
}

func (w *Watcher) listenLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if err := w.listenOnce(ctx); err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Msg("queue listener disconnected, retrying")
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
	}
}

func (w *Watcher) listenOnce(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return err
	}
	log.Info().Str("channel", notifyChannel).Msg("queue watcher subscribed")

	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			return err
		}
		w.reload(ctx)
	}
}

// reload fetches a fresh snapshot; only the newest in-flight reload may
// publish its result.
func (w *Watcher) reload(ctx context.Context) {
	w.mu.Lock()
	w.seq++
	seq := w.seq
	w.mu.Unlock()

	snap, err := w.svc.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("queue reload failed")
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq > w.applied {
		w.latest = &snap
		w.applied = seq
	}
}
