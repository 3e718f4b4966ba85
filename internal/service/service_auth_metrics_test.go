package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-job-tracker/internal/mock"
	"github.com/MKhiriev/go-job-tracker/models"
)

type recordedOperation struct {
	operation string
	failed    bool
}

type fakeRecorder struct {
	ops []recordedOperation
}

func (r *fakeRecorder) ObserveAuthOperation(operation string, err error) {
	r.ops = append(r.ops, recordedOperation{operation: operation, failed: err != nil})
}

func TestAuthMetricsService_RecordsOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock.NewMockAuthService(ctrl)
	recorder := &fakeRecorder{}
	svc := NewAuthMetricsService(recorder).Wrap(inner)
	ctx := context.Background()

	inner.EXPECT().Login(ctx, gomock.Any()).Return(models.LoginResult{}, ErrInvalidCredentials)
	inner.EXPECT().Refresh(ctx, "token").Return(models.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil)
	inner.EXPECT().Authenticate(ctx, "access").Return(alice, nil)

	_, err := svc.Login(ctx, models.LoginRequest{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	pair, err := svc.Refresh(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, "r", pair.RefreshToken)

	identity, err := svc.Authenticate(ctx, "access")
	assert.NoError(t, err)
	assert.Equal(t, alice, identity)

	assert.Equal(t, []recordedOperation{
		{operation: "login", failed: true},
		{operation: "refresh", failed: false},
	}, recorder.ops)
}
