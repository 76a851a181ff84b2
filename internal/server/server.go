package server

import (
	"context"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/handler"
	"github.com/michaelhessen/chronos/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	servers []*httpServer

	// ready is closed once every listener is bound.
	ready chan struct{}

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	var api http.Handler
	if handlers.HTTP != nil {
		api = handlers.HTTP.Init()
	}

	return newServer(cfg, api, handlers.Metrics, logger)
}

func newServer(cfg config.Server, api, metrics http.Handler, logger *logger.Logger) (*server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{ready: make(chan struct{}), logger: logger}

	if cfg.HTTPAddress != "" && api != nil {
		s.servers = append(s.servers, newHTTPServer("HTTP", cfg.HTTPAddress, api, logger))
	}
	if cfg.MetricsAddress != "" && metrics != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics)
		s.servers = append(s.servers, newHTTPServer("metrics", cfg.MetricsAddress, mux, logger))
	}

	if len(s.servers) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, srv := range s.servers {
		wg.Go(func() {
			srv.Shutdown(ctx)
		})
	}
	wg.Wait()
}

// run serves until ctx is done and then shuts every server down.
func (s *server) run(ctx context.Context) error {
	for _, srv := range s.servers {
		if err := srv.listen(); err != nil {
			s.closeListeners()
			return err
		}
	}
	close(s.ready)

	var wg sync.WaitGroup
	for _, srv := range s.servers {
		wg.Go(srv.RunServer)
	}

	<-ctx.Done()
	s.Shutdown()
	wg.Wait()

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) closeListeners() {
	for _, srv := range s.servers {
		if srv.listener != nil {
			srv.listener.Close()
		}
	}
}
