package ports

import (
	"context"

	"github.com/taskman/taskman-api/internal/core/domain"
)

type UserService interface {
	UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
