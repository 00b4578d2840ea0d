package ports

import (
	"context"
	"time"

	"github.com/taskman/taskman-api/internal/core/domain"
)

// SignupInput carries the registration form.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Grade    *int
}

// AccessToken is the result of a successful login.
type AccessToken struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// AuthService registers users, logs them in and resolves bearer tokens.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (int64, error)
	Login(ctx context.Context, email, password string) (*AccessToken, error)
	CurrentUserResolver
}

// CurrentUserResolver maps a bearer token to the user it was issued for.
type CurrentUserResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
