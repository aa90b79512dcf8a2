package http

import (
	"net/http"

	"github.com/arbormail/arbormail/internal/utils"
)

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.build, http.StatusOK)
}
