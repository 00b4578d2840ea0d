package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/core/ports"
)

type ProjectService struct {
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, logger: logger}
}

func (s *ProjectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidProjectName
	}

	created, err := s.projects.Create(ctx, &domain.Project{Name: name, Description: input.Description})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Int64("project_id", created.ID).Msg("project created")
	return created, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}
