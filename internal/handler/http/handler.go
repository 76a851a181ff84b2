package http

import (
	"time"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/metrics"
	"github.com/michaelhessen/chronos/internal/service"
)

type Handler struct {
	services *service.Services
	session  config.Session
	server   config.Server
	metrics  *metrics.Metrics
	now      func() time.Time

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. m may be nil.
func NewHandler(
	services *service.Services,
	session config.Session,
	server config.Server,
	m *metrics.Metrics,
	logger *logger.Logger,
) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		session:  session,
		server:   server,
		metrics:  m,
		now:      time.Now,
		logger:   logger,
	}
}
