package payment

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Azizyco/WarmindoGenzC/internal/order"
	"github.com/Azizyco/WarmindoGenzC/internal/storage"
)

var (
	ErrCodeNotFound  = errors.New("kode pembayaran tidak ditemukan")
	ErrEmptyCode     = errors.New("silakan masukkan kode pembayaran")
	ErrProofNotImage = errors.New("file harus berupa gambar")
	ErrProofTooLarge = errors.New("ukuran file maksimal 5MB")
)

// MaxProofSize caps proof-of-payment uploads at 5 MB.
const MaxProofSize = 5 << 20

type PanelState string

const (
	// StatePaid: the order already reached a paid-or-later status; show a
	// static confirmation, no upload controls.
	StatePaid PanelState = "paid"
	// StateCash: pay at the counter, no upload controls.
	StateCash PanelState = "cash"
	// StateAwaitingProof: show method instructions plus the upload control.
	StateAwaitingProof PanelState = "awaiting_proof"
	// StatePendingVerification: proof stored, waiting for staff.
	StatePendingVerification PanelState = "pending_verification"
)

// Panel is the render decision for the payment screen.
type Panel struct {
	State        PanelState      `json:"state"`
	Instructions *MethodSettings `json:"instructions,omitempty"`
}

// Details is everything the payment screen needs after a code lookup.
type Details struct {
	Order *order.Order `json:"order"`
	Items []order.Item `json:"items"`
	Panel Panel        `json:"panel"`
}

// ProofResult reflects the state after a successful proof upload.
type ProofResult struct {
	Order    *order.Order `json:"order"`
	ProofURL string       `json:"proof_url"`
	Panel    Panel        `json:"panel"`
}

type Service interface {
	Lookup(ctx context.Context, code string) (*Details, error)
	SubmitProof(ctx context.Context, code, filename, contentType string, data []byte) (*ProofResult, error)
}

type service struct {
	orders   order.Repository
	settings SettingsRepository
	proofs   storage.ObjectStorage // payment-proofs bucket
	now      func() time.Time
}

func NewService(orders order.Repository, settings SettingsRepository, proofs storage.ObjectStorage) Service {
	return &service{orders: orders, settings: settings, proofs: proofs, now: time.Now}
}

// NormalizeCode applies the human-entered code rules: trim and uppercase.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *service) Lookup(ctx context.Context, code string) (*Details, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	o, err := s.orders.GetByPaymentCode(ctx, code)
	if errors.Is(err, order.ErrOrderNotFound) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up payment code: %w", err)
	}

	// Items and settings are independent reads; fetch them together.
	var (
		items    []order.Item
		settings Settings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.orders.ItemsByOrderID(gctx, o.ID.String())
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.settings.PaymentSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service: failed to load payment details: %w", err)
	}

	return &Details{
		Order: o,
		Items: items,
		Panel: panelFor(o, settings),
	}, nil
}

// panelFor implements the render rules: paid-or-later wins, then cash, then
// method-specific instructions with an upload control.
func panelFor(o *order.Order, settings Settings) Panel {
	if o.Status.IsPaid() {
		return Panel{State: StatePaid}
	}
	if o.PaymentMethod == order.MethodCash {
		return Panel{State: StateCash}
	}
	return Panel{
		State:        StateAwaitingProof,
		Instructions: instructionsFor(o.PaymentMethod, settings),
	}
}

func instructionsFor(method order.PaymentMethod, settings Settings) *MethodSettings {
	switch method {
	case order.MethodQRIS:
		return settings.QRIS
	case order.MethodTransfer:
		return settings.Transfer
	case order.MethodEwallet:
		return settings.Ewallet
	}
	return nil
}

// SubmitProof validates the file before anything touches the network, stores
// it under a name derived from the order id and the current time, records the
// public URL on the order, and re-fetches the order to pick up any status
// change the update triggered. Resubmitting simply overwrites the stored URL.
func (s *service) SubmitProof(ctx context.Context, code, filename, contentType string, data []byte) (*ProofResult, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrProofNotImage
	}
	if len(data) > MaxProofSize {
		return nil, ErrProofTooLarge
	}

	code = NormalizeCode(code)
	o, err := s.orders.GetByPaymentCode(ctx, code)
	if errors.Is(err, order.ErrOrderNotFound) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up order for proof: %w", err)
	}

	ext := path.Ext(filename)
	objectName := fmt.Sprintf("%s_%d%s", o.ID, s.now().UnixMilli(), ext)

	if err := s.proofs.Put(ctx, objectName, contentType, data); err != nil {
		return nil, fmt.Errorf("service: failed to upload payment proof: %w", err)
	}
	proofURL := s.proofs.PublicURL(objectName)

	if err := s.orders.UpdateProofURL(ctx, code, proofURL); err != nil {
		return nil, fmt.Errorf("service: failed to attach proof url: %w", err)
	}

	// The proof update may have moved the order forward on the staff side.
	refreshed, err := s.orders.GetByID(ctx, o.ID.String())
	if err != nil {
		log.Warn().Err(err).Stringer("order_id", o.ID).Msg("service: failed to refresh order after proof upload")
		refreshed = o
		refreshed.ProofURL = proofURL
	}

	panel := Panel{State: StatePendingVerification}
	if refreshed.Status.IsPaid() {
		panel.State = StatePaid
	}

	log.Info().Stringer("order_id", o.ID).Str("object", objectName).Msg("service: payment proof stored")

	return &ProofResult{
		Order:    refreshed,
		ProofURL: proofURL,
		Panel:    panel,
	}, nil
}
