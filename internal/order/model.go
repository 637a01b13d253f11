package order

import (
	"time"

	"github.com/gofrs/uuid"
)

type Status string

const (
	StatusPlaced    Status = "placed"
	StatusPaid      Status = "paid"
	StatusConfirmed Status = "confirmed"
	StatusPrep      Status = "prep"
	StatusReady     Status = "ready"
	StatusServed    Status = "served"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"

	// StatusProcessing is written by the staff side while verifying proof;
	// the storefront only ever reads it.
	StatusProcessing Status = "processing"
)

func (s Status) String() string {
	return string(s)
}

// IsPaid reports whether the order has reached a paid-or-later state.
func (s Status) IsPaid() bool {
	switch s {
	case StatusPaid, StatusProcessing, StatusCompleted, StatusConfirmed:
		return true
	}
	return false
}

// IsTerminal reports whether the order left the live queue.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// allowedTransitions mirrors the staff-driven lifecycle. The storefront only
// reads statuses, but the map documents (and tests) the legal order of states.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPlaced:    {StatusPaid: true, StatusConfirmed: true, StatusCanceled: true},
	StatusPaid:      {StatusConfirmed: true, StatusPrep: true, StatusCanceled: true},
	StatusConfirmed: {StatusPrep: true, StatusCanceled: true},
	StatusPrep:      {StatusReady: true, StatusCanceled: true},
	StatusReady:     {StatusServed: true, StatusCanceled: true},
	StatusServed:    {StatusCompleted: true, StatusCanceled: true},
	StatusCompleted: {},
	StatusCanceled:  {},
}

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	return allowedTransitions[s][next]
}

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodQRIS     PaymentMethod = "qris"
	MethodTransfer PaymentMethod = "transfer"
	MethodEwallet  PaymentMethod = "ewallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodQRIS, MethodTransfer, MethodEwallet:
		return true
	}
	return false
}

// NeedsProof reports whether the method requires an uploaded proof of payment.
func (m PaymentMethod) NeedsProof() bool {
	return m == MethodQRIS || m == MethodTransfer || m == MethodEwallet
}

type Order struct {
	ID            uuid.UUID     `json:"id"`
	Source        string        `json:"source"`
	ServiceType   string        `json:"service_type"`
	TableNo       string        `json:"table_no,omitempty"`
	Status        Status        `json:"status"`
	GuestName     string        `json:"guest_name,omitempty"`
	Contact       string        `json:"contact,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentCode   string        `json:"payment_code"`
	QueueNo       int           `json:"queue_no"`
	TotalAmount   int64         `json:"total_amount"`
	ProofURL      string        `json:"proof_url,omitempty"`
	Active        bool          `json:"active"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Item is one order line. Qty and UnitPrice use the persistence schema's
// column names; the cart's quantity/price fields are remapped on checkout.
type Item struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	MenuID    uuid.UUID `json:"menu_id"`
	MenuName  string    `json:"menu_name,omitempty"`
	Qty       int       `json:"qty"`
	UnitPrice int64     `json:"unit_price"`
	Note      string    `json:"note,omitempty"`
}
