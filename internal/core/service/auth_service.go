package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskman/taskman-api/internal/core/auth"
	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/core/ports"
	"github.com/taskman/taskman-api/internal/pkg/metrics"
)

const tokenTypeBearer = "bearer"

// AuthService implements signup, login and current-user resolution.
type AuthService struct {
	users  ports.UserRepository
	tokens *auth.Tokens
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *auth.Tokens, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Signup registers a user and returns its ID. Duplicate emails are detected by
// the store's uniqueness constraint, not by a lookup beforehand.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (int64, error) {
	if err := domain.ValidateGrade(input.Grade); err != nil {
		return 0, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return 0, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Name:         input.Name,
		Grade:        input.Grade,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			metrics.AuthSignupsTotal.WithLabelValues("duplicate").Inc()
			s.logger.Info().Str("email", input.Email).Msg("signup rejected: email already registered")
			return 0, err
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return 0, err
	}

	metrics.AuthSignupsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")
	return created.ID, nil
}

// Login checks the credentials and issues an access token with the configured TTL.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AccessToken, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthLoginsTotal.WithLabelValues("unknown_user").Inc()
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		metrics.AuthLoginsTotal.WithLabelValues("wrong_password").Inc()
		s.logger.Info().Int64("user_id", user.ID).Msg("login rejected: wrong password")
		return nil, domain.ErrWrongPassword
	}

	token, expiresAt, err := s.tokens.IssueDefault(user.Email)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, err
	}

	metrics.AuthLoginsTotal.WithLabelValues("success").Inc()
	return &ports.AccessToken{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

// Resolve verifies token and returns the user it was issued to.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.users.FindByEmail(ctx, email)
}
