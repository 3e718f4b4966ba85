package handler

import (
	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/handler/grpc"
	"github.com/MKhiriev/go-job-tracker/internal/handler/http"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a handler per configured address. Options apply to
// the HTTP handler.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger, opts ...http.Option) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		opts = append([]http.Option{
			http.WithRequestTimeout(cfg.RequestTimeout),
			http.WithTrustedProxy(cfg.TrustProxy),
		}, opts...)
		handlers.HTTP = http.NewHandler(services, logger, opts...)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
