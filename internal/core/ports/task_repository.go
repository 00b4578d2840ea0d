package ports

import (
	"context"

	"github.com/taskman/taskman-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
// Missing rows are reported as domain.ErrTaskNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByAssignee(ctx context.Context, userID int64) ([]domain.Task, error)
	ListByDueDate(ctx context.Context, due domain.Date) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
}
