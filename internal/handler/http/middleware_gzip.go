package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Writer and reader pools shared by all requests. Compression state is
// reset on acquisition.
var (
	gzipWriters = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}
	gzipReaders = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// withGZip transparently decompresses gzip request bodies and compresses
// response bodies for clients that advertise gzip in Accept-Encoding.
// Config dumps and key listings are JSON with long repeated key paths, so
// they compress well.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			body, err := decompressedBody(r.Body)
			if err != nil {
				http.Error(w, "malformed gzip request body", http.StatusBadRequest)
				return
			}

			r.Body = body
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipWriters.Get().(*gzip.Writer)
		zw.Reset(w)
		defer func() {
			zw.Close()
			gzipWriters.Put(zw)
		}()

		w.Header().Set("Vary", "Accept-Encoding")
		next.ServeHTTP(&compressedResponseWriter{ResponseWriter: w, zw: zw}, r)
	})
}

// decompressedBody wraps body in a pooled gzip reader. Closing the returned
// ReadCloser returns the reader to the pool.
func decompressedBody(body io.ReadCloser) (io.ReadCloser, error) {
	zr := gzipReaders.Get().(*gzip.Reader)
	if err := zr.Reset(body); err != nil {
		gzipReaders.Put(zr)
		return nil, err
	}

	return &pooledBodyReader{zr: zr}, nil
}

// pooledBodyReader hands its gzip reader back to the pool exactly once, on
// Close.
type pooledBodyReader struct {
	zr     *gzip.Reader
	closed bool
}

func (b *pooledBodyReader) Read(p []byte) (int, error) {
	return b.zr.Read(p)
}

func (b *pooledBodyReader) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.zr.Close()
	gzipReaders.Put(b.zr)
	return err
}

// compressedResponseWriter funnels the response body through gzip. The
// Content-Encoding header is attached by whichever call commits the header
// first, so handlers that never call WriteHeader explicitly still advertise
// the encoding.
type compressedResponseWriter struct {
	http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
}

func (w *compressedResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
	}

	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *compressedResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	return w.zw.Write(data)
}
