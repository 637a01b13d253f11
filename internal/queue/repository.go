package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ViewToday(ctx context.Context) ([]Entry, error)
	OrdersToday(ctx context.Context, since time.Time) ([]Entry, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// ViewToday reads the precomputed vw_queue_today projection.
func (r *postgresRepository) ViewToday(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT id, coalesce(queue_no, 0), coalesce(guest_name, ''), coalesce(contact, ''),
		       service_type, coalesce(table_no, ''), order_status, is_paid, created_at
		FROM vw_queue_today
		ORDER BY queue_no
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query queue view: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows.Next, rows.Scan, rows.Err)
}

// OrdersToday is the fallback path: today's non-terminal orders with the
// paid flag derived from status membership.
func (r *postgresRepository) OrdersToday(ctx context.Context, since time.Time) ([]Entry, error) {
	query := `
		SELECT id, coalesce(queue_no, 0), coalesce(guest_name, ''), coalesce(contact, ''),
		       service_type, coalesce(table_no, ''), status,
		       status IN ('paid', 'processing', 'completed', 'confirmed'),
		       created_at
		FROM orders
		WHERE created_at >= $1
		  AND status NOT IN ('completed', 'canceled')
		ORDER BY queue_no, created_at
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query today's orders: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows.Next, rows.Scan, rows.Err)
}

func scanEntries(next func() bool, scan func(...any) error, rowsErr func() error) ([]Entry, error) {
	entries := make([]Entry, 0)
	for next() {
		var e Entry
		err := scan(&e.ID, &e.QueueNo, &e.GuestName, &e.Contact, &e.ServiceType,
			&e.TableNo, &e.OrderStatus, &e.IsPaid, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan queue entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rowsErr(); err != nil {
		return nil, fmt.Errorf("repository: error iterating queue entries: %w", err)
	}
	return entries, nil
}
