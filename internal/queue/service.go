package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/db"
)

type Service interface {
	Load(ctx context.Context) (Snapshot, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Load prefers the vw_queue_today view and falls back to the direct orders
// query only when the view is missing. Both paths produce the same Snapshot
// shape and aggregates.
func (s *service) Load(ctx context.Context) (Snapshot, error) {
	entries, err := s.repo.ViewToday(ctx)
	if err != nil {
		if !db.IsMissingRelation(err) {
			return Snapshot{}, fmt.Errorf("service: failed to load queue: %w", err)
		}

		log.Warn().Err(err).Msg("service: vw_queue_today missing, falling back to orders")
		entries, err = s.repo.OrdersToday(ctx, s.startOfToday())
		if err != nil {
			return Snapshot{}, fmt.Errorf("service: queue fallback failed: %w", err)
		}
	}

	return buildSnapshot(entries), nil
}

func (s *service) startOfToday() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
