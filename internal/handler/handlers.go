package handler

import (
	nethttp "net/http"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/handler/http"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/metrics"
	"github.com/michaelhessen/chronos/internal/service"
)

// Handlers holds the inbound transports. Metrics is nil when no metrics
// address is configured.
type Handlers struct {
	HTTP    *http.Handler
	Metrics nethttp.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, m *metrics.Metrics, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	handlers := &Handlers{
		HTTP: http.NewHandler(services, cfg.Session, cfg.Server, m, logger),
	}

	if cfg.Server.MetricsAddress != "" {
		handlers.Metrics = m.Handler()
	}

	return handlers, nil
}
