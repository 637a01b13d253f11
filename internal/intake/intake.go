package intake

import (
	"errors"
)

type ServiceType string

const (
	DineIn   ServiceType = "dine_in"
	Takeaway ServiceType = "takeaway"
)

var (
	ErrContactRequired = errors.New("minimal nama atau nomor kontak harus diisi")
	ErrTableRequired   = errors.New("nomor meja wajib dipilih untuk makan di tempat")
	ErrBadServiceType  = errors.New("jenis layanan tidak dikenal")
)

// PreOrder is the transient intake record collected before menu browsing.
// It lives in session-scoped storage and is consumed at checkout.
type PreOrder struct {
	GuestName   string      `json:"guest_name,omitempty"`
	Contact     string      `json:"contact,omitempty"`
	ServiceType ServiceType `json:"service_type"`
	TableNo     string      `json:"table_no,omitempty"`
}

// Validate enforces the intake rules: at least one of name/contact, and a
// table label whenever the guest dines in.
func (p PreOrder) Validate() error {
	if p.ServiceType != DineIn && p.ServiceType != Takeaway {
		return ErrBadServiceType
	}
	if p.GuestName == "" && p.Contact == "" {
		return ErrContactRequired
	}
	if p.ServiceType == DineIn && p.TableNo == "" {
		return ErrTableRequired
	}
	return nil
}

// FreeTable is an available table as shown on the intake screen.
type FreeTable struct {
	Label    string `json:"label"`
	Capacity int    `json:"capacity,omitempty"`
}
