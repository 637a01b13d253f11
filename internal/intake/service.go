package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/session"
)

// ErrNoPreOrder is returned when no intake record exists for the device.
var ErrNoPreOrder = errors.New("pre-order not found")

// preOrderTTL scopes the intake record to one visit.
const preOrderTTL = 2 * time.Hour

const freeTableLimit = 10

type Service interface {
	Save(ctx context.Context, deviceID string, p PreOrder) error
	Load(ctx context.Context, deviceID string) (PreOrder, error)
	Clear(ctx context.Context, deviceID string) error
	FreeTables(ctx context.Context) ([]FreeTable, error)
}

type service struct {
	store session.Store
	repo  Repository
}

func NewService(store session.Store, repo Repository) Service {
	return &service{store: store, repo: repo}
}

func storeKey(deviceID string) string {
	return "pre_order:" + deviceID
}

func (s *service) Save(ctx context.Context, deviceID string, p PreOrder) error {
	p.GuestName = strings.TrimSpace(p.GuestName)
	p.Contact = strings.TrimSpace(p.Contact)
	if p.ServiceType == Takeaway {
		p.TableNo = ""
	}

	if err := p.Validate(); err != nil {
		return err
	}

	if err := s.store.Set(ctx, storeKey(deviceID), p, preOrderTTL); err != nil {
		return fmt.Errorf("service: failed to save pre-order: %w", err)
	}
	return nil
}

func (s *service) Load(ctx context.Context, deviceID string) (PreOrder, error) {
	var p PreOrder
	err := s.store.Get(ctx, storeKey(deviceID), &p)
	if errors.Is(err, session.ErrNotFound) {
		return PreOrder{}, ErrNoPreOrder
	}
	if err != nil {
		return PreOrder{}, fmt.Errorf("service: failed to load pre-order: %w", err)
	}
	return p, nil
}

func (s *service) Clear(ctx context.Context, deviceID string) error {
	if err := s.store.Del(ctx, storeKey(deviceID)); err != nil {
		return fmt.Errorf("service: failed to clear pre-order: %w", err)
	}
	return nil
}

// FreeTables lists empty tables. A zero-row direct read falls through to the
// get_free_tables function before reporting that every table is taken.
func (s *service) FreeTables(ctx context.Context) ([]FreeTable, error) {
	tables, err := s.repo.EmptyTables(ctx)
	if err == nil && len(tables) > 0 {
		return tables, nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("service: direct tables read failed, trying get_free_tables")
	}

	tables, fnErr := s.repo.FreeTablesFn(ctx, freeTableLimit)
	if fnErr != nil {
		if err != nil {
			return nil, fmt.Errorf("service: failed to load tables: %w", err)
		}
		return nil, fmt.Errorf("service: failed to load free tables: %w", fnErr)
	}
	return tables, nil
}
