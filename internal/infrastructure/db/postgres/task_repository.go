package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskman/taskman-api/internal/core/domain"
)

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `task_id, task_description, assignee, due_date, grade, project`

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t       domain.Task
		due     time.Time
		grade   sql.NullInt32
		project sql.NullInt64
	)
	if err := row.Scan(&t.ID, &t.Description, &t.Assignee, &due, &grade, &project); err != nil {
		return nil, err
	}
	t.DueDate = domain.DateOf(due)
	t.Grade = intFromNull(grade)
	t.Project = int64FromNull(project)
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `INSERT INTO tasks (task_description, assignee, due_date, grade, project)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING task_id`

	created := *task
	err := r.db.QueryRowContext(ctx, query,
		task.Description, task.Assignee, task.DueDate.Time(), nullInt(task.Grade), nullInt64(task.Project),
	).Scan(&created.ID)
	if err != nil {
		if fkErr := foreignKeyError(err); fkErr != nil {
			return nil, fkErr
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE task_id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) list(ctx context.Context, where string, args ...any) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY task_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	return r.list(ctx, "")
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, userID int64) ([]domain.Task, error) {
	return r.list(ctx, `assignee = $1`, userID)
}

func (r *TaskRepository) ListByDueDate(ctx context.Context, due domain.Date) ([]domain.Task, error) {
	return r.list(ctx, `due_date = $1`, due.Time())
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `UPDATE tasks
		SET task_description = $1, assignee = $2, due_date = $3, grade = $4, project = $5
		WHERE task_id = $6`

	res, err := r.db.ExecContext(ctx, query,
		task.Description, task.Assignee, task.DueDate.Time(), nullInt(task.Grade), nullInt64(task.Project), task.ID)
	if err != nil {
		if fkErr := foreignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("db error: %w", err)
	}
	return expectAffected(res, domain.ErrTaskNotFound)
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectAffected(res, domain.ErrTaskNotFound)
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
