package service

import (
	"context"

	"github.com/MKhiriev/go-job-tracker/models"
)

// AuthServiceWrapper decorates an AuthService with extra behaviour such as
// metrics.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// AuthMetricsRecorder receives the outcome of every session manager call.
type AuthMetricsRecorder interface {
	ObserveAuthOperation(operation string, err error)
}

// AuthMetricsService counts AuthService calls by operation and outcome.
type AuthMetricsService struct {
	inner    AuthService
	recorder AuthMetricsRecorder
}

func NewAuthMetricsService(recorder AuthMetricsRecorder) AuthServiceWrapper {
	return &AuthMetricsService{recorder: recorder}
}

func (m *AuthMetricsService) Wrap(inner AuthService) AuthService {
	m.inner = inner
	return m
}

func (m *AuthMetricsService) Register(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error) {
	user, err := m.inner.Register(ctx, request)
	m.recorder.ObserveAuthOperation("register", err)
	return user, err
}

func (m *AuthMetricsService) Login(ctx context.Context, request models.LoginRequest) (models.LoginResult, error) {
	result, err := m.inner.Login(ctx, request)
	m.recorder.ObserveAuthOperation("login", err)
	return result, err
}

func (m *AuthMetricsService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	pair, err := m.inner.Refresh(ctx, refreshToken)
	m.recorder.ObserveAuthOperation("refresh", err)
	return pair, err
}

func (m *AuthMetricsService) Logout(ctx context.Context, identity models.Identity, refreshToken string) (string, error) {
	msg, err := m.inner.Logout(ctx, identity, refreshToken)
	m.recorder.ObserveAuthOperation("logout", err)
	return msg, err
}

func (m *AuthMetricsService) LogoutAll(ctx context.Context, identity models.Identity) (string, error) {
	msg, err := m.inner.LogoutAll(ctx, identity)
	m.recorder.ObserveAuthOperation("logout_all", err)
	return msg, err
}

func (m *AuthMetricsService) ChangePassword(ctx context.Context, identity models.Identity, request models.ChangePasswordRequest) (string, error) {
	msg, err := m.inner.ChangePassword(ctx, identity, request)
	m.recorder.ObserveAuthOperation("change_password", err)
	return msg, err
}

// Authenticate runs on every gated request and is not counted.
func (m *AuthMetricsService) Authenticate(ctx context.Context, accessToken string) (models.Identity, error) {
	return m.inner.Authenticate(ctx, accessToken)
}
