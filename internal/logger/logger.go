// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

// Package logger wraps zerolog behind the project's logging conventions:
// JSON lines with a role label, timestamps and fully-qualified caller names.
//
// Logger embeds zerolog.Logger, so the whole zerolog API is available on
// *Logger. Request-scoped instances travel through context and come back
// out via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger, leaving room for helper methods without
// touching the upstream type.
type Logger struct {
	zerolog.Logger
}

// newZerolog applies the process-wide zerolog conventions and builds a
// logger writing to w: a "role" label for filtering, a timestamp on every
// entry and the calling function's qualified name under "func". The global
// level starts at Info; SetGlobalLevel moves it.
func newZerolog(w io.Writer, role string) zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()
}

// NewLogger builds the daemon's logger, writing JSON lines to stdout.
func NewLogger(role string) *Logger {
	return &Logger{newZerolog(os.Stdout, role)}
}

// NewConsoleLogger builds the logger for the interactive console. While a
// bubbletea program owns the terminal, stray stdout writes corrupt the
// screen, so output goes to arbormailctl.log next to the executable. An
// unopenable log file falls back to stdout.
func NewConsoleLogger(role string) *Logger {
	execPath, _ := os.Executable()
	logPath := filepath.Join(filepath.Dir(execPath), "arbormailctl.log")

	var out io.Writer = os.Stdout
	if logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
		out = logFile
	}

	return &Logger{newZerolog(out, role)}
}

// SetGlobalLevel applies the named zerolog level ("debug", "info", "warn",
// ...) process-wide. Unknown names are rejected and the current level stays
// in place.
func SetGlobalLevel(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(parsed)
	return nil
}

// Nop returns a *Logger that discards everything. Tests use it to keep
// output quiet.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger inheriting the receiver's fields.
// Enriching the child leaves the parent untouched.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request's context, wrapped
// back into *Logger. The request-ID middleware attaches one to every
// management request.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext returns the logger attached to ctx. Without one attached,
// zerolog hands back its global logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
