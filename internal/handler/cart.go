package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/cart"
)

// CartHandler exposes the per-device shopping cart.
type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type addLineRequest struct {
	MenuID string `json:"menu_id"`
}

type changeQuantityRequest struct {
	Delta int `json:"delta"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	device, ok := requireDevice(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), device)
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to load cart")
		writeError(w, http.StatusInternalServerError, "gagal memuat keranjang")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	device, ok := requireDevice(w, r)
	if !ok {
		return
	}

	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	menuID, err := uuid.FromString(req.MenuID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	c, err := h.svc.Add(r.Context(), device, menuID)
	if errors.Is(err, cart.ErrMenuNotFound) {
		writeError(w, http.StatusNotFound, "menu tidak ditemukan")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to add cart line")
		writeError(w, http.StatusInternalServerError, "gagal menambahkan ke keranjang")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// ChangeQuantity handles PATCH /api/cart/items/{index}.
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	device, ok := requireDevice(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index")
		return
	}

	var req changeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.ChangeQuantity(r.Context(), device, index, req.Delta)
	if errors.Is(err, cart.ErrBadLineIndex) {
		writeError(w, http.StatusNotFound, "baris keranjang tidak ditemukan")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to change cart quantity")
		writeError(w, http.StatusInternalServerError, "gagal memperbarui keranjang")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Remove handles DELETE /api/cart/items/{index}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	device, ok := requireDevice(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index")
		return
	}

	c, err := h.svc.Remove(r.Context(), device, index)
	if errors.Is(err, cart.ErrBadLineIndex) {
		writeError(w, http.StatusNotFound, "baris keranjang tidak ditemukan")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to remove cart line")
		writeError(w, http.StatusInternalServerError, "gagal memperbarui keranjang")
		return
	}

	writeJSON(w, http.StatusOK, c)
}
