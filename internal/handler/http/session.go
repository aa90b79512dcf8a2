package http

import (
	"encoding/json"
	"net/http"

	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/utils"
	"github.com/arbormail/arbormail/models"
)

// createSession handles POST /api/session: it verifies the administrator
// credentials and returns a signed session token for the management API.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeAPIError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		log.Err(err).Str("login", credentials.Login).Msg("session creation rejected")
		writeAPIError(w, publicMessage(err), statusFromError(err))
		return
	}

	log.Info().Str("login", token.Login).Msg("session created")

	utils.WriteJSON(w, token, http.StatusOK)
}
