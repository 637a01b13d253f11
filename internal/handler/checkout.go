package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/checkout"
	"github.com/Azizyco/WarmindoGenzC/internal/order"
)

// CheckoutHandler turns the cart and pre-order into a placed order.
type CheckoutHandler struct {
	svc    checkout.Service
	orders order.Repository
}

func NewCheckoutHandler(svc checkout.Service, orders order.Repository) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, orders: orders}
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// Submit handles POST /api/checkout.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	device, ok := requireDevice(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.svc.Submit(r.Context(), device, order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrBadPaymentMethod),
			errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrNoPreOrder):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Msg("handler: checkout failed")
			writeError(w, http.StatusInternalServerError, "gagal membuat pesanan, silakan coba lagi")
		}
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}

// Receipt handles GET /api/orders/{id}: the post-checkout success screen.
func (h *CheckoutHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	if _, err := uuid.FromString(raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.GetByID(r.Context(), raw)
	if errors.Is(err, order.ErrOrderNotFound) {
		writeError(w, http.StatusNotFound, "pesanan tidak ditemukan")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to load order")
		writeError(w, http.StatusInternalServerError, "gagal memuat pesanan")
		return
	}

	items, err := h.orders.ItemsByOrderID(r.Context(), raw)
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to load order items")
		writeError(w, http.StatusInternalServerError, "gagal memuat pesanan")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"order": o,
		"items": items,
	})
}
