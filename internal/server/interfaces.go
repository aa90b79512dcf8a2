package server

// Server is the run-until-signalled contract of the management listener.
//
// RunServer blocks, watching for SIGINT, SIGTERM and SIGQUIT, and returns
// once in-flight requests have drained. Shutdown forces the same teardown
// without waiting for a signal.
type Server interface {
	RunServer()
	Shutdown()
}
