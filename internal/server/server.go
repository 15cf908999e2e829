package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/handler"
	"github.com/MKhiriev/gsc-identity/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := new(server)

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	servers.logger = logger

	return servers, nil
}

func (s *server) transports() []transport {
	var ts []transport
	if s.httpServer != nil {
		ts = append(ts, s.httpServer)
	}
	if s.gRPCServer != nil {
		ts = append(ts, s.gRPCServer)
	}
	return ts
}

// listen binds every transport. Binding before serving makes a busy port
// fail Run instead of a background goroutine.
func (s *server) listen() error {
	for _, t := range s.transports() {
		if err := t.listen(); err != nil {
			return fmt.Errorf("%s listen: %w", t.name(), err)
		}
	}
	return nil
}

func (s *server) Run(ctx context.Context) error {
	if err := s.listen(); err != nil {
		return err
	}

	transports := s.transports()
	errCh := make(chan error, len(transports))

	var wg sync.WaitGroup
	for _, t := range transports {
		s.logger.Info().Msgf("Launching %s server", t.name())
		wg.Go(func() {
			if err := t.serve(); err != nil {
				errCh <- fmt.Errorf("%s serve: %w", t.name(), err)
				return
			}
			errCh <- fmt.Errorf("%w: %s", errServerStopped, t.name())
		})
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		s.logger.Err(runErr).Str("func", "*server.Run").Msg("transport failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	for _, t := range transports {
		t.shutdown(shutdownCtx)
	}
	wg.Wait()

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}
