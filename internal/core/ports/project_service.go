package ports

import (
	"context"

	"github.com/taskman/taskman-api/internal/core/domain"
)

type CreateProjectInput struct {
	Name        string
	Description *string
}

type ProjectService interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
}
