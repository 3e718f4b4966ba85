package service

import (
	"context"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/store"
	"github.com/MKhiriev/go-job-tracker/models"
)

type userService struct {
	users  store.UserRepository
	logger *logger.Logger
}

func NewUserService(users store.UserRepository, logger *logger.Logger) UserService {
	return &userService{users: users, logger: logger}
}

// ListUsers returns every registered user without credentials. No users is
// an empty list, not an error.
func (s *userService) ListUsers(ctx context.Context) ([]models.UserListItem, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.ListUsers").Msg("error listing users")
		return nil, internalError(err)
	}

	items := make([]models.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, u.ListItem())
	}

	return items, nil
}
