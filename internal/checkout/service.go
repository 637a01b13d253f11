package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/cart"
	"github.com/Azizyco/WarmindoGenzC/internal/intake"
	"github.com/Azizyco/WarmindoGenzC/internal/order"
)

var (
	ErrEmptyCart        = errors.New("keranjang kosong")
	ErrNoPreOrder       = errors.New("informasi pemesanan tidak lengkap")
	ErrBadPaymentMethod = errors.New("metode pembayaran tidak dikenal")
)

const sourceWeb = "web"

// Receipt is what the customer needs after a successful checkout.
type Receipt struct {
	OrderID     uuid.UUID `json:"order_id"`
	PaymentCode string    `json:"payment_code"`
	QueueNo     int       `json:"queue_no"`
	TotalAmount int64     `json:"total_amount"`
}

type Service interface {
	Submit(ctx context.Context, deviceID string, method order.PaymentMethod) (*Receipt, error)
}

type service struct {
	carts     cart.Service
	intakes   intake.Service
	orderRepo order.Repository
}

func NewService(carts cart.Service, intakes intake.Service, orderRepo order.Repository) Service {
	return &service{carts: carts, intakes: intakes, orderRepo: orderRepo}
}

// Submit re-validates the cart and pre-order, computes the total, and writes
// the order with its items in one repository call. The cart and pre-order are
// cleared only after the write succeeds; any failure leaves both intact so
// the customer can retry.
func (s *service) Submit(ctx context.Context, deviceID string, method order.PaymentMethod) (*Receipt, error) {
	if !method.Valid() {
		return nil, ErrBadPaymentMethod
	}

	c, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart for checkout: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	pre, err := s.intakes.Load(ctx, deviceID)
	if errors.Is(err, intake.ErrNoPreOrder) {
		return nil, ErrNoPreOrder
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to load pre-order for checkout: %w", err)
	}

	o := &order.Order{
		Source:        sourceWeb,
		ServiceType:   string(pre.ServiceType),
		TableNo:       pre.TableNo,
		Status:        order.StatusPlaced,
		GuestName:     pre.GuestName,
		Contact:       pre.Contact,
		PaymentMethod: method,
		TotalAmount:   c.Total(),
		Active:        true,
	}

	// Cart lines carry quantity/price; the persisted schema names the
	// columns qty/unit_price. The rename happens here, once.
	items := make([]order.Item, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, order.Item{
			MenuID:    line.MenuID,
			Qty:       line.Quantity,
			UnitPrice: line.Price,
			Note:      line.Note,
		})
	}

	if err := s.orderRepo.Create(ctx, o, items); err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("service: checkout failed")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	// Post-commit cleanup; a failed clear must not fail the checkout.
	if err := s.carts.Clear(ctx, deviceID); err != nil {
		log.Warn().Err(err).Str("device_id", deviceID).Msg("service: failed to clear cart after checkout")
	}
	if err := s.intakes.Clear(ctx, deviceID); err != nil {
		log.Warn().Err(err).Str("device_id", deviceID).Msg("service: failed to clear pre-order after checkout")
	}

	log.Info().Stringer("order_id", o.ID).Str("payment_code", o.PaymentCode).
		Int("queue_no", o.QueueNo).Msg("service: order created")

	return &Receipt{
		OrderID:     o.ID,
		PaymentCode: o.PaymentCode,
		QueueNo:     o.QueueNo,
		TotalAmount: o.TotalAmount,
	}, nil
}
