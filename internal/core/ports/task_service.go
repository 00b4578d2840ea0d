package ports

import (
	"context"

	"github.com/taskman/taskman-api/internal/core/domain"
)

// CreateTaskInput is the DTO passed from the transport layer to TaskService.
type CreateTaskInput struct {
	Description string
	Assignee    int64
	DueDate     *domain.Date // nil = tomorrow
	Grade       *int
	Project     *int64
}

// DayTasks is the agenda for a single day.
type DayTasks struct {
	DueDate  domain.Date
	IsDayOff bool
	Tasks    []domain.Task
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListUserTasks(ctx context.Context, userID int64) ([]domain.Task, error)
	// TasksForDay lists tasks due on date together with its day-off flag.
	// A nil date means today.
	TasksForDay(ctx context.Context, date *domain.Date) (*DayTasks, error)
	SelectCandidate(ctx context.Context, minGrade int) (*domain.User, error)
	DeleteTask(ctx context.Context, id int64) error
}
