package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ActiveMenus(ctx context.Context) ([]MenuItem, error)
	Categories(ctx context.Context) ([]Category, error)
	CatalogFn(ctx context.Context, limit int) ([]MenuItem, error)
	CatalogJoin(ctx context.Context, limit int) ([]MenuItem, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ActiveMenus(ctx context.Context) ([]MenuItem, error) {
	query := `
		SELECT m.id, m.name, coalesce(m.description, ''), m.price, m.is_active,
		       coalesce(m.category_id, '00000000-0000-0000-0000-000000000000'::uuid),
		       coalesce(c.name, ''), coalesce(m.photo_url, '')
		FROM menus m
		LEFT JOIN menu_categories c ON c.id = m.category_id
		WHERE m.is_active
		ORDER BY m.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query active menus: %w", err)
	}
	defer rows.Close()

	menus := make([]MenuItem, 0)
	for rows.Next() {
		var m MenuItem
		err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.IsActive,
			&m.CategoryID, &m.CategoryName, &m.PhotoURL)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan menu: %w", err)
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating menus: %w", err)
	}

	return menus, nil
}

func (r *postgresRepository) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM menu_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("repository: failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating categories: %w", err)
	}

	return categories, nil
}

// CatalogFn reads through the menu_catalog database function.
func (r *postgresRepository) CatalogFn(ctx context.Context, limit int) ([]MenuItem, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, price, category_name, is_active FROM menu_catalog($1, true)`, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: menu_catalog call failed: %w", err)
	}
	defer rows.Close()

	menus := make([]MenuItem, 0)
	for rows.Next() {
		m, err := scanCatalogRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating menu_catalog rows: %w", err)
	}

	return menus, nil
}

// CatalogJoin is the direct-query adapter used when the function is absent.
// Both adapters produce the same MenuItem shape.
func (r *postgresRepository) CatalogJoin(ctx context.Context, limit int) ([]MenuItem, error) {
	query := `
		SELECT m.id, m.name, m.description, m.price, c.name, m.is_active
		FROM menus m
		INNER JOIN menu_categories c ON c.id = m.category_id
		WHERE m.is_active
		ORDER BY m.name
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: fallback catalog query failed: %w", err)
	}
	defer rows.Close()

	menus := make([]MenuItem, 0)
	for rows.Next() {
		m, err := scanCatalogRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating fallback catalog rows: %w", err)
	}

	return menus, nil
}

func scanCatalogRow(scan func(...any) error) (MenuItem, error) {
	var (
		m           MenuItem
		description *string
		category    *string
	)
	if err := scan(&m.ID, &m.Name, &description, &m.Price, &category, &m.IsActive); err != nil {
		return MenuItem{}, fmt.Errorf("repository: failed to scan catalog row: %w", err)
	}
	if description != nil {
		m.Description = *description
	}
	if category != nil {
		m.CategoryName = *category
	}
	return m, nil
}
