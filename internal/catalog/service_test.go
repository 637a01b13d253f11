package catalog_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Azizyco/WarmindoGenzC/internal/catalog"
)

type mockRepository struct {
	activeMenusFunc func(ctx context.Context) ([]catalog.MenuItem, error)
	categoriesFunc  func(ctx context.Context) ([]catalog.Category, error)
	catalogFnFunc   func(ctx context.Context, limit int) ([]catalog.MenuItem, error)
	catalogJoinFunc func(ctx context.Context, limit int) ([]catalog.MenuItem, error)
	joinCalls       int
}

func (m *mockRepository) ActiveMenus(ctx context.Context) ([]catalog.MenuItem, error) {
	return m.activeMenusFunc(ctx)
}

func (m *mockRepository) Categories(ctx context.Context) ([]catalog.Category, error) {
	return m.categoriesFunc(ctx)
}

func (m *mockRepository) CatalogFn(ctx context.Context, limit int) ([]catalog.MenuItem, error) {
	return m.catalogFnFunc(ctx, limit)
}

func (m *mockRepository) CatalogJoin(ctx context.Context, limit int) ([]catalog.MenuItem, error) {
	m.joinCalls++
	return m.catalogJoinFunc(ctx, limit)
}

type fakeBucket struct{}

func (fakeBucket) Put(ctx context.Context, key, contentType string, data []byte) error { return nil }
func (fakeBucket) Delete(ctx context.Context, key string) error                        { return nil }
func (fakeBucket) PublicURL(key string) string {
	return "https://cdn.example.com/menu-images/" + key
}

func menuFixture() []catalog.MenuItem {
	return []catalog.MenuItem{
		{ID: uuid.Must(uuid.NewV4()), Name: "Indomie Goreng", Price: 12000},
		{ID: uuid.Must(uuid.NewV4()), Name: "Ayam Geprek", Price: 18000},
		{ID: uuid.Must(uuid.NewV4()), Name: "Es Teh", Price: 5000},
	}
}

func TestCatalogService_ListMenus_Sorting(t *testing.T) {
	tests := []struct {
		name      string
		sort      catalog.SortOrder
		wantNames []string
	}{
		{
			name:      "default_sorts_by_name",
			sort:      "",
			wantNames: []string{"Ayam Geprek", "Es Teh", "Indomie Goreng"},
		},
		{
			name:      "price_ascending",
			sort:      catalog.SortPriceAsc,
			wantNames: []string{"Es Teh", "Indomie Goreng", "Ayam Geprek"},
		},
		{
			name:      "price_descending",
			sort:      catalog.SortPriceDesc,
			wantNames: []string{"Ayam Geprek", "Indomie Goreng", "Es Teh"},
		},
		{
			name:      "newest_reverses_insertion_order",
			sort:      catalog.SortNewest,
			wantNames: []string{"Es Teh", "Ayam Geprek", "Indomie Goreng"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				activeMenusFunc: func(ctx context.Context) ([]catalog.MenuItem, error) {
					return menuFixture(), nil
				},
			}
			svc := catalog.NewService(repo, fakeBucket{})

			menus, err := svc.ListMenus(context.Background(), catalog.Filter{Sort: tt.sort})

			assert.NoError(t, err)
			names := make([]string, 0, len(menus))
			for _, m := range menus {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestCatalogService_ListMenus_CategoryFilter(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())
	menus := menuFixture()
	menus[0].CategoryID = categoryID

	repo := &mockRepository{
		activeMenusFunc: func(ctx context.Context) ([]catalog.MenuItem, error) {
			return menus, nil
		},
	}
	svc := catalog.NewService(repo, fakeBucket{})

	got, err := svc.ListMenus(context.Background(), catalog.Filter{CategoryID: categoryID})

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Indomie Goreng", got[0].Name)
}

func TestCatalogService_ListMenus_PhotoURLs(t *testing.T) {
	menus := []catalog.MenuItem{
		{ID: uuid.Must(uuid.NewV4()), Name: "A", PhotoURL: "indomie.jpg"},
		{ID: uuid.Must(uuid.NewV4()), Name: "B", PhotoURL: "https://elsewhere.example.com/x.jpg"},
		{ID: uuid.Must(uuid.NewV4()), Name: "C", PhotoURL: ""},
	}
	repo := &mockRepository{
		activeMenusFunc: func(ctx context.Context) ([]catalog.MenuItem, error) {
			return menus, nil
		},
	}
	svc := catalog.NewService(repo, fakeBucket{})

	got, err := svc.ListMenus(context.Background(), catalog.Filter{})

	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/menu-images/indomie.jpg", got[0].PhotoURL)
	assert.Equal(t, "https://elsewhere.example.com/x.jpg", got[1].PhotoURL)
	assert.Empty(t, got[2].PhotoURL)
}

func TestCatalogService_Recommendable(t *testing.T) {
	ctx := context.Background()
	menus := menuFixture()

	t.Run("prefers_catalog_function", func(t *testing.T) {
		repo := &mockRepository{
			catalogFnFunc: func(ctx context.Context, limit int) ([]catalog.MenuItem, error) {
				return menus, nil
			},
		}
		svc := catalog.NewService(repo, fakeBucket{})

		got, err := svc.Recommendable(ctx, 15)

		assert.NoError(t, err)
		assert.Equal(t, menus, got)
		assert.Zero(t, repo.joinCalls)
	})

	t.Run("missing_function_uses_join", func(t *testing.T) {
		repo := &mockRepository{
			catalogFnFunc: func(ctx context.Context, limit int) ([]catalog.MenuItem, error) {
				return nil, &pgconn.PgError{Code: "42883", Message: "function menu_catalog does not exist"}
			},
			catalogJoinFunc: func(ctx context.Context, limit int) ([]catalog.MenuItem, error) {
				return menus, nil
			},
		}
		svc := catalog.NewService(repo, fakeBucket{})

		got, err := svc.Recommendable(ctx, 15)

		assert.NoError(t, err)
		assert.Equal(t, menus, got)
		assert.Equal(t, 1, repo.joinCalls)
	})

	t.Run("both_paths_failing_is_an_error", func(t *testing.T) {
		repo := &mockRepository{
			catalogFnFunc: func(ctx context.Context, limit int) ([]catalog.MenuItem, error) {
				return nil, assert.AnError
			},
			catalogJoinFunc: func(ctx context.Context, limit int) ([]catalog.MenuItem, error) {
				return nil, assert.AnError
			},
		}
		svc := catalog.NewService(repo, fakeBucket{})

		_, err := svc.Recommendable(ctx, 15)

		assert.Error(t, err)
	})

	t.Run("non_positive_limit_uses_default", func(t *testing.T) {
		var gotLimit int
		repo := &mockRepository{
			catalogFnFunc: func(ctx context.Context, limit int) ([]catalog.MenuItem, error) {
				gotLimit = limit
				return menus, nil
			},
		}
		svc := catalog.NewService(repo, fakeBucket{})

		_, err := svc.Recommendable(ctx, 0)

		assert.NoError(t, err)
		assert.Equal(t, catalog.RecommendLimit, gotLimit)
	})
}
