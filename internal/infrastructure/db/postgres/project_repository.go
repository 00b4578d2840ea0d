package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskman/taskman-api/internal/core/domain"
)

type ProjectRepository struct {
	db DBTX
}

func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	created := *project
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO projects (project_name, project_description) VALUES ($1, $2) RETURNING project_id`,
		project.Name, nullString(project.Description)).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	var (
		p    domain.Project
		desc sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT project_id, project_name, project_description FROM projects WHERE project_id = $1`, id,
	).Scan(&p.ID, &p.Name, &desc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Description = stringFromNull(desc)
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id, project_name, project_description FROM projects ORDER BY project_id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var (
			p    domain.Project
			desc sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &desc); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.Description = stringFromNull(desc)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return projects, nil
}
