package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/core/ports"
)

type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// UpdateUser applies patch to the stored user. Only name and grade can change.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	if err := domain.ValidateGrade(patch.Grade); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
