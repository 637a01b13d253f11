package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/catalog"
	"github.com/Azizyco/WarmindoGenzC/internal/session"
)

var (
	ErrMenuNotFound = errors.New("menu item not found")
	ErrBadLineIndex = errors.New("cart line index out of range")
)

type Service interface {
	Get(ctx context.Context, deviceID string) (Cart, error)
	Add(ctx context.Context, deviceID string, menuID uuid.UUID) (Cart, error)
	ChangeQuantity(ctx context.Context, deviceID string, index, delta int) (Cart, error)
	Remove(ctx context.Context, deviceID string, index int) (Cart, error)
	Clear(ctx context.Context, deviceID string) error
}

type service struct {
	store   session.Store
	catalog catalog.Service
}

func NewService(store session.Store, catalogSvc catalog.Service) Service {
	return &service{store: store, catalog: catalogSvc}
}

func storeKey(deviceID string) string {
	return "cart:" + deviceID
}

func (s *service) Get(ctx context.Context, deviceID string) (Cart, error) {
	var c Cart
	err := s.store.Get(ctx, storeKey(deviceID), &c)
	if errors.Is(err, session.ErrNotFound) {
		return Cart{Lines: []Line{}}, nil
	}
	if err != nil {
		return Cart{}, fmt.Errorf("service: failed to load cart: %w", err)
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	return c, nil
}

// Add increments the quantity of an existing line, or appends a new line with
// quantity 1 carrying a snapshot of the menu's current name and price.
func (s *service) Add(ctx context.Context, deviceID string, menuID uuid.UUID) (Cart, error) {
	c, err := s.Get(ctx, deviceID)
	if err != nil {
		return Cart{}, err
	}

	found := false
	for i := range c.Lines {
		if c.Lines[i].MenuID == menuID {
			c.Lines[i].Quantity++
			found = true
			break
		}
	}

	if !found {
		menus, err := s.catalog.ListMenus(ctx, catalog.Filter{})
		if err != nil {
			return Cart{}, fmt.Errorf("service: failed to snapshot menu for cart: %w", err)
		}
		var menu *catalog.MenuItem
		for i := range menus {
			if menus[i].ID == menuID {
				menu = &menus[i]
				break
			}
		}
		if menu == nil {
			return Cart{}, ErrMenuNotFound
		}
		c.Lines = append(c.Lines, Line{
			MenuID:   menu.ID,
			Name:     menu.Name,
			Price:    menu.Price,
			Quantity: 1,
		})
	}

	if err := s.persist(ctx, deviceID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// ChangeQuantity adjusts a line by delta; a resulting quantity of zero or
// less removes the line entirely.
func (s *service) ChangeQuantity(ctx context.Context, deviceID string, index, delta int) (Cart, error) {
	c, err := s.Get(ctx, deviceID)
	if err != nil {
		return Cart{}, err
	}
	if index < 0 || index >= len(c.Lines) {
		return Cart{}, ErrBadLineIndex
	}

	c.Lines[index].Quantity += delta
	if c.Lines[index].Quantity <= 0 {
		c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	}

	if err := s.persist(ctx, deviceID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *service) Remove(ctx context.Context, deviceID string, index int) (Cart, error) {
	c, err := s.Get(ctx, deviceID)
	if err != nil {
		return Cart{}, err
	}
	if index < 0 || index >= len(c.Lines) {
		return Cart{}, ErrBadLineIndex
	}

	removed := c.Lines[index].Name
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)

	if err := s.persist(ctx, deviceID, c); err != nil {
		return Cart{}, err
	}
	log.Debug().Str("device_id", deviceID).Str("item", removed).Msg("service: cart line removed")
	return c, nil
}

func (s *service) Clear(ctx context.Context, deviceID string) error {
	if err := s.store.Del(ctx, storeKey(deviceID)); err != nil {
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}
	return nil
}

// persist writes the full cart after every mutation; the cart key is durable.
func (s *service) persist(ctx context.Context, deviceID string, c Cart) error {
	if err := s.store.Set(ctx, storeKey(deviceID), c, 0); err != nil {
		return fmt.Errorf("service: failed to persist cart: %w", err)
	}
	return nil
}
