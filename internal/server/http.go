package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/michaelhessen/chronos/internal/logger"
)

const readHeaderTimeout = 5 * time.Second

type httpServer struct {
	name     string
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

func newHTTPServer(name, addr string, handler http.Handler, logger *logger.Logger) *httpServer {
	return &httpServer{
		name: name,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

// listen binds the address so bind errors surface before serving starts.
func (h *httpServer) listen() error {
	l, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("%s server listen on %q: %w", h.name, h.server.Addr, err)
	}
	h.listener = l
	return nil
}

func (h *httpServer) RunServer() {
	h.logger.Info().Str("addr", h.listener.Addr().String()).Msgf("launching %s server", h.name)
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Error().Err(err).Msgf("%s server Serve", h.name)
	}
}

func (h *httpServer) Shutdown(ctx context.Context) {
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error().Err(err).Msgf("%s server Shutdown", h.name)
	}
}
