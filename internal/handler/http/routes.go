package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init assembles the management router. Middleware order matters: the
// request ID is stamped first so every log line can carry it, and gzip sits
// innermost so the logged response size is what actually went over the wire.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withRequestID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// Reachable without a session: the health probe, the build info and
	// the session endpoint itself.
	router.Group(func(r chi.Router) {
		r.Get("/healthz", h.health)
		r.Get("/api/version", h.version)
		r.Post("/api/session", h.createSession)
	})

	// Everything that reads or mutates configuration requires the bearer
	// token.
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/config", h.effectiveConfig)
		r.Post("/api/config/check", h.checkConfig)

		r.Get("/api/config/keys", h.listKeys)
		r.Put("/api/config/keys", h.putKeys)
		r.Delete("/api/config/keys/{key}", h.deleteKey)
	})

	return router
}
