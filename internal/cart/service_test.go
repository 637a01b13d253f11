package cart_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Azizyco/WarmindoGenzC/internal/cart"
	"github.com/Azizyco/WarmindoGenzC/internal/catalog"
	"github.com/Azizyco/WarmindoGenzC/internal/session"
)

// memStore is an in-process session.Store backed by a map.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string, dest any) error {
	raw, ok := m.data[key]
	if !ok {
		return session.ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (m *memStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memStore) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type mockCatalogService struct {
	listMenusFunc func(ctx context.Context, filter catalog.Filter) ([]catalog.MenuItem, error)
}

func (m *mockCatalogService) ListMenus(ctx context.Context, filter catalog.Filter) ([]catalog.MenuItem, error) {
	return m.listMenusFunc(ctx, filter)
}

func (m *mockCatalogService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return nil, nil
}

func (m *mockCatalogService) Recommendable(ctx context.Context, limit int) ([]catalog.MenuItem, error) {
	return nil, nil
}

func fixedCatalog(menus ...catalog.MenuItem) *mockCatalogService {
	return &mockCatalogService{
		listMenusFunc: func(ctx context.Context, filter catalog.Filter) ([]catalog.MenuItem, error) {
			return menus, nil
		},
	}
}

func TestCartService_Add(t *testing.T) {
	ctx := context.Background()
	menuID := uuid.Must(uuid.NewV4())
	menu := catalog.MenuItem{ID: menuID, Name: "Indomie Goreng", Price: 12000, IsActive: true}

	t.Run("new_line_snapshots_name_and_price", func(t *testing.T) {
		svc := cart.NewService(newMemStore(), fixedCatalog(menu))

		c, err := svc.Add(ctx, "device-1", menuID)

		assert.NoError(t, err)
		assert.Len(t, c.Lines, 1)
		assert.Equal(t, "Indomie Goreng", c.Lines[0].Name)
		assert.Equal(t, int64(12000), c.Lines[0].Price)
		assert.Equal(t, 1, c.Lines[0].Quantity)
	})

	t.Run("same_menu_increments_existing_line", func(t *testing.T) {
		svc := cart.NewService(newMemStore(), fixedCatalog(menu))

		_, err := svc.Add(ctx, "device-1", menuID)
		assert.NoError(t, err)
		c, err := svc.Add(ctx, "device-1", menuID)

		assert.NoError(t, err)
		assert.Len(t, c.Lines, 1)
		assert.Equal(t, 2, c.Lines[0].Quantity)
		assert.Equal(t, int64(24000), c.Total())
	})

	t.Run("unknown_menu_rejected", func(t *testing.T) {
		svc := cart.NewService(newMemStore(), fixedCatalog(menu))

		_, err := svc.Add(ctx, "device-1", uuid.Must(uuid.NewV4()))

		assert.ErrorIs(t, err, cart.ErrMenuNotFound)
	})

	t.Run("carts_are_per_device", func(t *testing.T) {
		svc := cart.NewService(newMemStore(), fixedCatalog(menu))

		_, err := svc.Add(ctx, "device-1", menuID)
		assert.NoError(t, err)

		other, err := svc.Get(ctx, "device-2")
		assert.NoError(t, err)
		assert.True(t, other.IsEmpty())
	})
}

func TestCartService_ChangeQuantity(t *testing.T) {
	ctx := context.Background()
	menuID := uuid.Must(uuid.NewV4())
	menu := catalog.MenuItem{ID: menuID, Name: "Es Teh", Price: 5000, IsActive: true}

	setup := func(t *testing.T) cart.Service {
		svc := cart.NewService(newMemStore(), fixedCatalog(menu))
		_, err := svc.Add(ctx, "device-1", menuID)
		assert.NoError(t, err)
		return svc
	}

	t.Run("positive_delta_increments", func(t *testing.T) {
		svc := setup(t)

		c, err := svc.ChangeQuantity(ctx, "device-1", 0, 2)

		assert.NoError(t, err)
		assert.Equal(t, 3, c.Lines[0].Quantity)
	})

	t.Run("delta_to_zero_removes_line", func(t *testing.T) {
		svc := setup(t)

		c, err := svc.ChangeQuantity(ctx, "device-1", 0, -1)

		assert.NoError(t, err)
		assert.True(t, c.IsEmpty())

		// Removal is persisted, not just returned.
		c, err = svc.Get(ctx, "device-1")
		assert.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("index_out_of_range", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.ChangeQuantity(ctx, "device-1", 5, 1)

		assert.ErrorIs(t, err, cart.ErrBadLineIndex)
	})
}

func TestCartService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	menuA := catalog.MenuItem{ID: uuid.Must(uuid.NewV4()), Name: "Indomie Goreng", Price: 12000}
	menuB := catalog.MenuItem{ID: uuid.Must(uuid.NewV4()), Name: "Es Teh", Price: 5000}

	svc := cart.NewService(newMemStore(), fixedCatalog(menuA, menuB))
	_, err := svc.Add(ctx, "device-1", menuA.ID)
	assert.NoError(t, err)
	_, err = svc.Add(ctx, "device-1", menuB.ID)
	assert.NoError(t, err)

	c, err := svc.Remove(ctx, "device-1", 0)
	assert.NoError(t, err)
	assert.Len(t, c.Lines, 1)
	assert.Equal(t, "Es Teh", c.Lines[0].Name)

	_, err = svc.Remove(ctx, "device-1", 3)
	assert.ErrorIs(t, err, cart.ErrBadLineIndex)

	assert.NoError(t, svc.Clear(ctx, "device-1"))
	c, err = svc.Get(ctx, "device-1")
	assert.NoError(t, err)
	assert.True(t, c.IsEmpty())
}
