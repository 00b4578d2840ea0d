package ports

import (
	"context"

	"github.com/taskman/taskman-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts user and returns it with its store-assigned ID.
	// A duplicate email yields domain.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListByMinGrade returns users whose grade is set and >= minGrade, ordered by ID.
	ListByMinGrade(ctx context.Context, minGrade int) ([]domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
