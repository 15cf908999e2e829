package server

import "context"

// Server is the lifecycle of the transports managed by this package.
type Server interface {
	// Run serves until ctx is done or a transport fails, then shuts every
	// transport down.
	Run(ctx context.Context) error
}

// transport is one listener-backed server.
type transport interface {
	listen() error
	serve() error
	shutdown(ctx context.Context)
	name() string
}
