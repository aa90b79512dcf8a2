package http

import (
	"io"
	"net/http"

	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/utils"
)

// checkBodyLimit bounds the size of documents accepted by the check
// endpoint. Real deployment documents are a few kilobytes; a megabyte
// leaves generous room for inlined certificate material.
const checkBodyLimit = 1 << 20

// effectiveConfig handles GET /api/config: the configuration the daemon
// booted with, secret material redacted.
func (h *Handler) effectiveConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	cfg, err := h.services.ConfigService.Effective(r.Context())
	if err != nil {
		log.Err(err).Msg("effective config dump failed")
		writeAPIError(w, publicMessage(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, cfg, http.StatusOK)
}

// checkConfig handles POST /api/config/check: the body is a candidate
// configuration document; the response is the verdict of running it through
// the full load pipeline. The HTTP status is 200 for any completed check —
// a rejected document is a result, not a transport failure.
func (h *Handler) checkConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	document, err := io.ReadAll(io.LimitReader(r.Body, checkBodyLimit))
	if err != nil {
		log.Err(err).Msg("reading check document failed")
		writeAPIError(w, "cannot read request body", http.StatusBadRequest)
		return
	}

	report := h.services.ConfigService.Check(r.Context(), document)

	utils.WriteJSON(w, report, http.StatusOK)
}
