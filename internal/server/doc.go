// Package server runs the HTTP and gRPC transports and stops them
// gracefully when the run context ends.
package server
