// Package server runs the chronos HTTP and metrics listeners and shuts them
// down gracefully on SIGINT, SIGTERM or SIGQUIT.
package server
