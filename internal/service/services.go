package service

import (
	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/crypto"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/store"
)

type Services struct {
	TokenService   TokenService
	AuthService    AuthService
	UserService    UserService
	AppInfoService AppInfoService
}

// NewServices wires every service over storages. Wrappers are applied to
// the AuthService in the given order, the first one outermost.
func NewServices(storages *store.Storages, db Pinger, cfg config.App, logger *logger.Logger, wrappers ...AuthServiceWrapper) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, db, logger)
	if err != nil {
		return nil, err
	}

	tokens := NewTokenService(cfg.Tokens())
	auth := NewAuthService(
		storages.UserRepository,
		storages.SessionRepository,
		crypto.NewBcryptHasher(cfg.PasswordHashCost),
		tokens,
		cfg,
		logger,
	)
	for i := len(wrappers) - 1; i >= 0; i-- {
		auth = wrappers[i].Wrap(auth)
	}

	return &Services{
		TokenService:   tokens,
		AuthService:    auth,
		UserService:    NewUserService(storages.UserRepository, logger),
		AppInfoService: appInfo,
	}, nil
}
