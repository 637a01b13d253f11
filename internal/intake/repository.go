package intake

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	EmptyTables(ctx context.Context) ([]FreeTable, error)
	FreeTablesFn(ctx context.Context, limit int) ([]FreeTable, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) EmptyTables(ctx context.Context) ([]FreeTable, error) {
	query := `
		SELECT label, coalesce(capacity, 0)
		FROM tables
		WHERE status = 'empty'
		ORDER BY label
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query empty tables: %w", err)
	}
	defer rows.Close()

	tables := make([]FreeTable, 0)
	for rows.Next() {
		var t FreeTable
		if err := rows.Scan(&t.Label, &t.Capacity); err != nil {
			return nil, fmt.Errorf("repository: failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating tables: %w", err)
	}

	return tables, nil
}

// FreeTablesFn reads through the get_free_tables database function, which is
// safe against row-level access policies on the tables relation.
func (r *postgresRepository) FreeTablesFn(ctx context.Context, limit int) ([]FreeTable, error) {
	rows, err := r.db.Query(ctx, `SELECT label, coalesce(capacity, 0) FROM get_free_tables($1)`, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: get_free_tables call failed: %w", err)
	}
	defer rows.Close()

	tables := make([]FreeTable, 0)
	for rows.Next() {
		var t FreeTable
		if err := rows.Scan(&t.Label, &t.Capacity); err != nil {
			return nil, fmt.Errorf("repository: failed to scan free table row: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating free table rows: %w", err)
	}

	return tables, nil
}
