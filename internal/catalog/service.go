package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/db"
	"github.com/Azizyco/WarmindoGenzC/internal/storage"
)

type Service interface {
	ListMenus(ctx context.Context, filter Filter) ([]MenuItem, error)
	ListCategories(ctx context.Context) ([]Category, error)
	Recommendable(ctx context.Context, limit int) ([]MenuItem, error)
}

type service struct {
	repo   Repository
	assets storage.ObjectStorage // menu-images public bucket
}

func NewService(repo Repository, assets storage.ObjectStorage) Service {
	return &service{repo: repo, assets: assets}
}

func (s *service) ListMenus(ctx context.Context, filter Filter) ([]MenuItem, error) {
	menus, err := s.repo.ActiveMenus(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list menus: %w", err)
	}

	if filter.CategoryID != uuid.Nil {
		filtered := menus[:0]
		for _, m := range menus {
			if m.CategoryID == filter.CategoryID {
				filtered = append(filtered, m)
			}
		}
		menus = filtered
	}

	sortMenus(menus, filter.Sort)

	for i := range menus {
		menus[i].PhotoURL = s.resolvePhotoURL(menus[i].PhotoURL)
	}

	return menus, nil
}

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

// Recommendable prefers the aggregated menu_catalog function and falls back
// to the join query when the function is missing or failing.
func (s *service) Recommendable(ctx context.Context, limit int) ([]MenuItem, error) {
	if limit <= 0 {
		limit = RecommendLimit
	}

	menus, err := s.repo.CatalogFn(ctx, limit)
	if err == nil {
		return menus, nil
	}

	if db.IsMissingRelation(err) {
		log.Warn().Err(err).Msg("service: menu_catalog unavailable, using direct query")
	} else {
		log.Warn().Err(err).Msg("service: menu_catalog failed, using direct query")
	}

	menus, err = s.repo.CatalogJoin(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch menu data: %w", err)
	}
	return menus, nil
}

// resolvePhotoURL leaves absolute URLs alone and routes bare storage paths
// through the public menu-images bucket.
func (s *service) resolvePhotoURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return s.assets.PublicURL(path)
}

func sortMenus(menus []MenuItem, order SortOrder) {
	switch order {
	case SortNewest:
		for i, j := 0, len(menus)-1; i < j; i, j = i+1, j-1 {
			menus[i], menus[j] = menus[j], menus[i]
		}
	case SortPriceAsc:
		sort.SliceStable(menus, func(i, j int) bool { return menus[i].Price < menus[j].Price })
	case SortPriceDesc:
		sort.SliceStable(menus, func(i, j int) bool { return menus[i].Price > menus[j].Price })
	default:
		sort.SliceStable(menus, func(i, j int) bool { return menus[i].Name < menus[j].Name })
	}
}
