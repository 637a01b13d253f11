package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNoItems       = errors.New("order must contain at least one item")
)

type Repository interface {
	Create(ctx context.Context, o *Order, items []Item) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByPaymentCode(ctx context.Context, code string) (*Order, error)
	ItemsByOrderID(ctx context.Context, orderID string) ([]Item, error)
	UpdateProofURL(ctx context.Context, paymentCode, proofURL string) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// Create inserts the order and all of its items in one transaction, so items
// never exist without their order and a failed item insert rolls the order
// back. Payment code and queue number come back from the insert trigger.
func (r *postgresRepository) Create(ctx context.Context, o *Order, items []Item) (err error) {
	if len(items) == 0 {
		return ErrNoItems
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("repository: failed to rollback order create")
			}
		}
	}()

	queryOrder := `
		INSERT INTO orders (source, service_type, table_no, status, guest_name, contact,
		                    payment_method, total_amount, active)
		VALUES ($1, $2, nullif($3, ''), $4, nullif($5, ''), nullif($6, ''), $7, $8, $9)
		RETURNING id, payment_code, queue_no, created_at, updated_at
	`
	err = tx.QueryRow(ctx, queryOrder,
		o.Source,
		o.ServiceType,
		o.TableNo,
		string(o.Status),
		o.GuestName,
		o.Contact,
		string(o.PaymentMethod),
		o.TotalAmount,
		o.Active,
	).Scan(&o.ID, &o.PaymentCode, &o.QueueNo, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("repository: failed to insert order: %w", err)
	}

	queryItem := `
		INSERT INTO order_items (order_id, menu_id, qty, unit_price, note)
		VALUES ($1, $2, $3, $4, nullif($5, ''))
		RETURNING id
	`
	for i := range items {
		item := &items[i]
		item.OrderID = o.ID
		err = tx.QueryRow(ctx, queryItem,
			item.OrderID,
			item.MenuID,
			item.Qty,
			item.UnitPrice,
			item.Note,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("repository: failed to insert order item for order %s: %w", o.ID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit order create: %w", err)
	}
	return nil
}

const orderColumns = `
	id, source, service_type, coalesce(table_no, ''), status, coalesce(guest_name, ''),
	coalesce(contact, ''), payment_method, coalesce(payment_code, ''), coalesce(queue_no, 0),
	total_amount, coalesce(proof_url, ''), active, created_at, updated_at
`

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *postgresRepository) GetByPaymentCode(ctx context.Context, code string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_code = $1`
	return r.getOne(ctx, query, code)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg any) (*Order, error) {
	var o Order
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&o.ID,
		&o.Source,
		&o.ServiceType,
		&o.TableNo,
		&o.Status,
		&o.GuestName,
		&o.Contact,
		&o.PaymentMethod,
		&o.PaymentCode,
		&o.QueueNo,
		&o.TotalAmount,
		&o.ProofURL,
		&o.Active,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order: %w", err)
	}
	return &o, nil
}

func (r *postgresRepository) ItemsByOrderID(ctx context.Context, orderID string) ([]Item, error) {
	query := `
		SELECT i.id, i.order_id, i.menu_id, coalesce(m.name, ''), i.qty, i.unit_price, coalesce(i.note, '')
		FROM order_items i
		LEFT JOIN menus m ON m.id = i.menu_id
		WHERE i.order_id = $1
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for order %s: %w", orderID, err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		err := rows.Scan(&item.ID, &item.OrderID, &item.MenuID, &item.MenuName,
			&item.Qty, &item.UnitPrice, &item.Note)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item for order %s: %w", orderID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items for order %s: %w", orderID, err)
	}

	return items, nil
}

// UpdateProofURL goes through the update_order_proof_url function rather than
// a raw UPDATE so access policy stays enforced on the database side.
func (r *postgresRepository) UpdateProofURL(ctx context.Context, paymentCode, proofURL string) error {
	var affected int
	err := r.db.QueryRow(ctx, `SELECT update_order_proof_url($1, $2)`, paymentCode, proofURL).Scan(&affected)
	if err != nil {
		return fmt.Errorf("repository: update_order_proof_url failed for code %s: %w", paymentCode, err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
