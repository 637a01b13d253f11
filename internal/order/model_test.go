package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Azizyco/WarmindoGenzC/internal/order"
)

func TestStatus_IsPaid(t *testing.T) {
	paid := []order.Status{order.StatusPaid, order.StatusProcessing, order.StatusCompleted, order.StatusConfirmed}
	unpaid := []order.Status{order.StatusPlaced, order.StatusPrep, order.StatusReady, order.StatusServed, order.StatusCanceled}

	for _, s := range paid {
		assert.True(t, s.IsPaid(), "%s should count as paid", s)
	}
	for _, s := range unpaid {
		assert.False(t, s.IsPaid(), "%s should not count as paid", s)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.StatusCompleted.IsTerminal())
	assert.True(t, order.StatusCanceled.IsTerminal())
	assert.False(t, order.StatusPlaced.IsTerminal())
	assert.False(t, order.StatusServed.IsTerminal())
}

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from order.Status
		to   order.Status
		want bool
	}{
		{name: "placed_to_paid", from: order.StatusPlaced, to: order.StatusPaid, want: true},
		{name: "paid_to_prep", from: order.StatusPaid, to: order.StatusPrep, want: true},
		{name: "prep_to_ready", from: order.StatusPrep, to: order.StatusReady, want: true},
		{name: "served_to_completed", from: order.StatusServed, to: order.StatusCompleted, want: true},
		{name: "any_active_to_canceled", from: order.StatusReady, to: order.StatusCanceled, want: true},
		{name: "no_skipping_to_ready", from: order.StatusPlaced, to: order.StatusReady, want: false},
		{name: "completed_is_final", from: order.StatusCompleted, to: order.StatusPrep, want: false},
		{name: "canceled_is_final", from: order.StatusCanceled, to: order.StatusPlaced, want: false},
		{name: "no_backwards_moves", from: order.StatusReady, to: order.StatusPrep, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestPaymentMethod(t *testing.T) {
	assert.True(t, order.MethodCash.Valid())
	assert.True(t, order.MethodQRIS.Valid())
	assert.False(t, order.PaymentMethod("bitcoin").Valid())

	assert.False(t, order.MethodCash.NeedsProof())
	assert.True(t, order.MethodQRIS.NeedsProof())
	assert.True(t, order.MethodTransfer.NeedsProof())
	assert.True(t, order.MethodEwallet.NeedsProof())
}
