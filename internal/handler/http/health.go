package http

import (
	"net/http"

	"github.com/arbormail/arbormail/internal/logger"
)

// health handles GET /healthz. The daemon is healthy when its config store
// answers a ping; a daemon running without a store is always healthy.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.services.ConfigService.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("health check failed")
		writeAPIError(w, "config store unreachable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
