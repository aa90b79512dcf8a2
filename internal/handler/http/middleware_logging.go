package http

import (
	"net/http"
	"time"

	"github.com/arbormail/arbormail/internal/logger"
)

// withLogging emits one structured line per management request after the
// handler returns: method, URI, status, response size and wall time. It
// logs through the request-scoped logger, so the line carries the request
// ID stamped upstream.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, uri := r.Method, r.RequestURI
		recorder := &responseWriter{ResponseWriter: w}

		start := time.Now()
		next.ServeHTTP(recorder, r)

		logger.FromRequest(r).Info().
			Str("method", method).
			Str("uri", uri).
			Int("status", recorder.status).
			Int("size", recorder.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}

// responseWriter decorates [http.ResponseWriter] to record the status code
// and body byte count for the request log line. The header is forwarded to
// the wrapped writer at most once; a Write before any explicit WriteHeader
// records the implicit 200.
type responseWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
