package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/payment"
)

// PaymentHandler serves the payment status page and proof uploads.
type PaymentHandler struct {
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Lookup handles GET /api/pay/{code}.
func (h *PaymentHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	details, err := h.svc.Lookup(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrEmptyCode):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, payment.ErrCodeNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			log.Error().Err(err).Msg("handler: payment lookup failed")
			writeError(w, http.StatusInternalServerError, "gagal memuat status pembayaran")
		}
		return
	}

	writeJSON(w, http.StatusOK, details)
}

// SubmitProof handles POST /api/pay/{code}/proof as a multipart upload with
// the image under the "proof" field.
func (h *PaymentHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	// The body cap leaves room for multipart framing above the file cap, so
	// an exactly-5MB image still parses and an oversized file reaches the
	// service's ErrProofTooLarge check instead of dying in FormFile.
	r.Body = http.MaxBytesReader(w, r.Body, payment.MaxProofSize+1<<20)

	file, header, err := r.FormFile("proof")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file bukti pembayaran tidak ditemukan")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "gagal membaca file bukti pembayaran")
		return
	}

	result, err := h.svc.SubmitProof(r.Context(), chi.URLParam(r, "code"),
		header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrProofNotImage),
			errors.Is(err, payment.ErrProofTooLarge),
			errors.Is(err, payment.ErrEmptyCode):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, payment.ErrCodeNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			log.Error().Err(err).Msg("handler: proof upload failed")
			writeError(w, http.StatusInternalServerError, "gagal mengunggah bukti pembayaran")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
