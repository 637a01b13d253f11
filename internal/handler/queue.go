package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/queue"
)

// QueueHandler serves the live kitchen queue board.
type QueueHandler struct {
	watcher *queue.Watcher
}

func NewQueueHandler(watcher *queue.Watcher) *QueueHandler {
	return &QueueHandler{watcher: watcher}
}

// Snapshot handles GET /api/queue.
func (h *QueueHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	var snap queue.Snapshot
	err := withRetry(r.Context(), func() error {
		var err error
		snap, err = h.watcher.Snapshot(r.Context())
		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to load queue snapshot")
		writeError(w, http.StatusInternalServerError, "gagal memuat antrian")
		return
	}

	writeJSON(w, http.StatusOK, snap)
}
