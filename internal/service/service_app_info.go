package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
)

type appInfoService struct {
	appVersion string
	db         Pinger

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, db Pinger, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		db:         db,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("%w: no database configured", ErrInternal)
	}
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Err(err).Str("func", "*appInfoService.Ping").Msg("database ping failed")
		return fmt.Errorf("%w: database ping: %w", ErrInternal, err)
	}
	return nil
}
