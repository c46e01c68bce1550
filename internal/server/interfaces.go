package server

// Server is the lifecycle contract for the controller's transport server.
//
// RunServer blocks until a shutdown signal arrives or the listener fails;
// Shutdown drains in-flight requests and releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
