package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// deviceHeader carries the per-device identity that keys cart and pre-order
// state. Browsers generate it once and send it on every request.
const deviceHeader = "X-Device-ID"

// retryDelay is the fixed wait before the single retry on throttling signals.
const retryDelay = 2 * time.Second

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("handler: failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func deviceID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(deviceHeader))
}

func requireDevice(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := deviceID(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "X-Device-ID header is required")
		return "", false
	}
	return id, true
}

// isRateLimited detects throttling signals from backends; these are the only
// failures worth a blind second attempt.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests")
}

// withRetry runs fn and retries it exactly once, after a fixed delay, when
// the failure looks like rate limiting. Every other error is returned as-is
// and stays retryable by the user.
func withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || !isRateLimited(err) {
		return err
	}

	log.Warn().Err(err).Msg("handler: rate limited, retrying once")
	select {
	case <-ctx.Done():
		return err
	case <-time.After(retryDelay):
	}
	return fn()
}
