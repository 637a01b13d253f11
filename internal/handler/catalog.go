package handler

import (
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/catalog"
)

// CatalogHandler serves the menu browsing screens.
type CatalogHandler struct {
	svc catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListMenus handles GET /api/menus?category=<id>&sort=<order>.
func (h *CatalogHandler) ListMenus(w http.ResponseWriter, r *http.Request) {
	filter := catalog.Filter{Sort: catalog.SortOrder(r.URL.Query().Get("sort"))}

	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category id")
			return
		}
		filter.CategoryID = id
	}

	var menus []catalog.MenuItem
	err := withRetry(r.Context(), func() error {
		var err error
		menus, err = h.svc.ListMenus(r.Context(), filter)
		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to list menus")
		writeError(w, http.StatusInternalServerError, "gagal memuat menu, silakan coba lagi")
		return
	}

	writeJSON(w, http.StatusOK, menus)
}

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to list categories")
		writeError(w, http.StatusInternalServerError, "gagal memuat kategori, silakan coba lagi")
		return
	}

	writeJSON(w, http.StatusOK, categories)
}
