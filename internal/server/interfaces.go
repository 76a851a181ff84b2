package server

// Server is the lifecycle of the chronos process.
type Server interface {
	// RunServer serves until a stop signal arrives, then shuts down.
	RunServer()

	// Shutdown stops every listener, waiting for in-flight requests.
	Shutdown()
}
