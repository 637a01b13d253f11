package queue

import (
	"time"

	"github.com/gofrs/uuid"
)

// Entry is one row of the customer-facing queue, identical whichever read
// path produced it.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	QueueNo     int       `json:"queue_no"`
	GuestName   string    `json:"guest_name,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	ServiceType string    `json:"service_type"`
	TableNo     string    `json:"table_no,omitempty"`
	OrderStatus string    `json:"order_status"`
	IsPaid      bool      `json:"is_paid"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot is a full queue render. Total == Paid + Unpaid always holds.
type Snapshot struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Paid    int     `json:"paid"`
	Unpaid  int     `json:"unpaid"`
}

func buildSnapshot(entries []Entry) Snapshot {
	snap := Snapshot{Entries: entries, Total: len(entries)}
	for _, e := range entries {
		if e.IsPaid {
			snap.Paid++
		}
	}
	snap.Unpaid = snap.Total - snap.Paid
	return snap
}
