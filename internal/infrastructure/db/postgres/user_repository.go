package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskman/taskman-api/internal/core/domain"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, email, password, name, grade`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u     domain.User
		grade sql.NullInt32
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &grade); err != nil {
		return nil, err
	}
	u.Grade = intFromNull(grade)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (email, password, name, grade)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id`

	created := *user
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, nullInt(user.Grade)).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err, constraintUsersEmail) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, `user_id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `email = $1`, email)
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

// ListByMinGrade skips users without a grade since NULL >= n is never true.
func (r *UserRepository) ListByMinGrade(ctx context.Context, minGrade int) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE grade >= $1 ORDER BY user_id`, minGrade)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $1, grade = $2 WHERE user_id = $3`,
		user.Name, nullInt(user.Grade), user.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectAffected(res, domain.ErrUserNotFound)
}
