package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/intake"
)

// IntakeHandler manages the guest details collected before ordering.
type IntakeHandler struct {
	svc intake.Service
}

func NewIntakeHandler(svc intake.Service) *IntakeHandler {
	return &IntakeHandler{svc: svc}
}

// Save handles POST /api/intake.
func (h *IntakeHandler) Save(w http.ResponseWriter, r *http.Request) {
	device, ok := requireDevice(w, r)
	if !ok {
		return
	}

	var p intake.PreOrder
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Save(r.Context(), device, p); err != nil {
		switch {
		case errors.Is(err, intake.ErrContactRequired),
			errors.Is(err, intake.ErrTableRequired),
			errors.Is(err, intake.ErrBadServiceType):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Msg("handler: failed to save pre-order")
			writeError(w, http.StatusInternalServerError, "gagal menyimpan data pemesanan")
		}
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Load handles GET /api/intake.
func (h *IntakeHandler) Load(w http.ResponseWriter, r *http.Request) {
	device, ok := requireDevice(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Load(r.Context(), device)
	if errors.Is(err, intake.ErrNoPreOrder) {
		writeError(w, http.StatusNotFound, "data pemesanan belum diisi")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to load pre-order")
		writeError(w, http.StatusInternalServerError, "gagal memuat data pemesanan")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Clear handles DELETE /api/intake.
func (h *IntakeHandler) Clear(w http.ResponseWriter, r *http.Request) {
	device, ok := requireDevice(w, r)
	if !ok {
		return
	}

	if err := h.svc.Clear(r.Context(), device); err != nil {
		log.Error().Err(err).Msg("handler: failed to clear pre-order")
		writeError(w, http.StatusInternalServerError, "gagal menghapus data pemesanan")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FreeTables handles GET /api/tables/free.
func (h *IntakeHandler) FreeTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.svc.FreeTables(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to list free tables")
		writeError(w, http.StatusInternalServerError, "gagal memuat daftar meja")
		return
	}

	writeJSON(w, http.StatusOK, tables)
}
