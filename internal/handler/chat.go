package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/catalog"
	"github.com/Azizyco/WarmindoGenzC/internal/recommend"
)

// ChatHandler bridges the recommendation chat widget to a Provider.
type ChatHandler struct {
	provider recommend.Provider
}

func NewChatHandler(provider recommend.Provider) *ChatHandler {
	return &ChatHandler{provider: provider}
}

type chatRequest struct {
	Message json.RawMessage `json:"message"`
	Limit   int             `json:"limit"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Recommend handles POST /api/chat. The message must be a non-empty JSON
// string; anything else is rejected before the provider is consulted. An
// optional limit bounds the menu context, defaulting to the catalog's
// recommendation window.
func (h *ChatHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var message string
	if err := json.Unmarshal(req.Message, &message); err != nil || strings.TrimSpace(message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = catalog.RecommendLimit
	}

	reply, err := h.provider.Recommend(r.Context(), message, limit)
	if err != nil {
		log.Error().Err(err).Msg("handler: recommendation failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:  "Internal server error",
			Detail: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
