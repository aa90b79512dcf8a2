package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arbormail/arbormail/internal/logger"
)

const (
	// readHeaderTimeout bounds how long a client may take to send request
	// headers. The management API serves small local requests; a slow
	// header is a stuck client, not a big upload.
	readHeaderTimeout = 10 * time.Second

	// shutdownTimeout bounds graceful shutdown. In-flight requests get
	// this long to complete before the listener is torn down.
	shutdownTimeout = 10 * time.Second
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, address string, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

func (h *httpServer) RunServer() {
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Err(err).Msg("HTTP server ListenAndServe")
	}
}

func (h *httpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("HTTP server Shutdown")
	}
}
