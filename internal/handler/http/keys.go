package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/utils"
	"github.com/arbormail/arbormail/models"
)

// listKeys handles GET /api/config/keys?prefix=: the store's entries,
// optionally restricted to a dotted-key prefix.
func (h *Handler) listKeys(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	prefix := r.URL.Query().Get("prefix")

	keys, err := h.services.ConfigService.Keys(r.Context(), prefix)
	if err != nil {
		log.Err(err).Str("prefix", prefix).Msg("config key listing failed")
		writeAPIError(w, publicMessage(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.KeyListResponse{Keys: keys, Length: len(keys)}, http.StatusOK)
}

// putKeys handles PUT /api/config/keys: the body is a JSON array of entries
// to upsert into the store.
func (h *Handler) putKeys(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var entries []models.ConfigKey
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeAPIError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.ConfigService.SetKeys(r.Context(), entries...); err != nil {
		log.Err(err).Int("entries", len(entries)).Msg("config key upsert failed")
		writeAPIError(w, publicMessage(err), statusFromError(err))
		return
	}

	admin, _ := utils.GetLoginFromContext(r.Context())
	log.Info().Str("admin", admin).Int("entries", len(entries)).Msg("config keys upserted")

	w.WriteHeader(http.StatusNoContent)
}

// deleteKey handles DELETE /api/config/keys/{key}. The path segment is the
// URL-escaped dotted key.
func (h *Handler) deleteKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil {
		log.Err(err).Msg("malformed key path segment")
		writeAPIError(w, "malformed key path segment", http.StatusBadRequest)
		return
	}

	if err := h.services.ConfigService.DeleteKey(r.Context(), key); err != nil {
		log.Err(err).Str("key", key).Msg("config key delete failed")
		writeAPIError(w, publicMessage(err), statusFromError(err))
		return
	}

	admin, _ := utils.GetLoginFromContext(r.Context())
	log.Info().Str("admin", admin).Str("key", key).Msg("config key deleted")

	w.WriteHeader(http.StatusNoContent)
}
