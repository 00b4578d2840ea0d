package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskman/taskman-api/internal/core/domain"
)

var userCols = []string{"user_id", "email", "password", "name", "grade"}

func intPtr(v int) *int { return &v }

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(email,\s*password,\s*name,\s*grade\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+user_id$`).
		WithArgs("anna@example.com", "hash", "Anna", 3).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(7)))

	in := &domain.User{Email: "anna@example.com", PasswordHash: "hash", Name: "Anna", Grade: intPtr(3)}
	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "anna@example.com", got.Email)
	assert.Zero(t, in.ID, "input must not be mutated")
}

func TestUserRepository_Create_NullGrade(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`^INSERT\s+INTO\s+users`).
		WithArgs("bob@example.com", "hash", "Bob", nil).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)))

	_, err := repo.Create(context.Background(), &domain.User{Email: "bob@example.com", PasswordHash: "hash", Name: "Bob"})
	require.NoError(t, err)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`^INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraintUsersEmail})

	_, err := repo.Create(context.Background(), &domain.User{Email: "dup@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserRepository_Create_DBError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`^INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &domain.User{Email: "x@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Contains(t, err.Error(), "db down")
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`(?s)^SELECT\s+user_id,\s*email,\s*password,\s*name,\s*grade\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("anna@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(2), "anna@example.com", "hash", "Anna", nil))

	got, err := repo.FindByEmail(context.Background(), "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Nil(t, got.Grade)
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`WHERE\s+user_id\s*=\s*\$1$`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_ListByMinGrade(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`(?s)FROM\s+users\s+WHERE\s+grade\s*>=\s*\$1\s+ORDER\s+BY\s+user_id$`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(1), "a@example.com", "h", "A", int64(3)).
			AddRow(int64(4), "b@example.com", "h", "B", int64(7)))

	users, err := repo.ListByMinGrade(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 3, *users[0].Grade)
	assert.Equal(t, int64(4), users[1].ID)
}

func TestUserRepository_List_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`FROM\s+users\s+ORDER\s+BY\s+user_id$`).
		WillReturnRows(sqlmock.NewRows(userCols))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+name\s*=\s*\$1,\s*grade\s*=\s*\$2\s+WHERE\s+user_id\s*=\s*\$3$`).
		WithArgs("Ivan", 4, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^UPDATE\s+users`).
		WithArgs("Ghost", nil, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Update(context.Background(), &domain.User{ID: 9, Name: "Ivan", Grade: intPtr(4)}))
	assert.ErrorIs(t, repo.Update(context.Background(), &domain.User{ID: 10, Name: "Ghost"}), domain.ErrUserNotFound)
}
