package domain

import "errors"

// Error categories. Every domain error unwraps to exactly one of these so the
// transport layer can fall back to a category when it has no specific mapping.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrPolicyViolation = errors.New("policy violation")
	ErrAuth            = errors.New("authentication failed")
	ErrUpstream        = errors.New("upstream failure")
	ErrValidation      = errors.New("validation failed")
)

var (
	ErrUserNotFound     = newError(ErrNotFound, "user not found")
	ErrTaskNotFound     = newError(ErrNotFound, "task not found")
	ErrProjectNotFound  = newError(ErrNotFound, "project not found")
	ErrAssigneeNotFound = newError(ErrNotFound, "assignee not found")
	ErrNoEligibleUsers  = newError(ErrNotFound, "no users with the required grade")

	ErrEmailAlreadyExists = newError(ErrConflict, "user with this email already exists")

	ErrInsufficientGrade = newError(ErrPolicyViolation, "assignee grade is lower than the task grade")

	ErrWrongPassword = newError(ErrAuth, "wrong password")
	ErrInvalidToken  = newError(ErrAuth, "invalid token")
	ErrExpiredToken  = newError(ErrAuth, "token expired")

	ErrInvalidGrade       = newError(ErrValidation, "grade must be between 1 and 10")
	ErrDueDateInPast      = newError(ErrValidation, "due date must not be before today")
	ErrInvalidDescription = newError(ErrValidation, "task description must be 1 to 300 characters")
	ErrInvalidProjectName = newError(ErrValidation, "project name is required")
)

type categorizedError struct {
	category error
	msg      string
}

func newError(category error, msg string) error {
	return &categorizedError{category: category, msg: msg}
}

func (e *categorizedError) Error() string { return e.msg }

func (e *categorizedError) Unwrap() error { return e.category }
