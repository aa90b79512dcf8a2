// Package server runs the management plane HTTP server.
//
// It owns the server lifecycle: startup, OS signal handling, and graceful
// shutdown with an in-flight request drain.
package server
