package domain

import "unicode/utf8"

// MaxDescriptionLen is the maximum task description length in characters.
const MaxDescriptionLen = 300

// Task is a unit of work delegated to an assignee.
type Task struct {
	ID          int64  `json:"task_id"`
	Description string `json:"task_description"`
	Assignee    int64  `json:"assignee"`
	DueDate     Date   `json:"due_date"`
	// Grade is the minimum assignee grade required. Nil means unconstrained.
	Grade   *int   `json:"grade"`
	Project *int64 `json:"project"`
}

// TaskPatch carries a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Description *string
	Assignee    *int64
	DueDate     *Date
	Grade       *int
	Project     *int64
}

// Apply copies the present fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Grade != nil {
		g := *p.Grade
		t.Grade = &g
	}
	if p.Project != nil {
		id := *p.Project
		t.Project = &id
	}
}

// ValidateDescription checks that s is non-empty and at most MaxDescriptionLen characters.
func ValidateDescription(s string) error {
	if s == "" || utf8.RuneCountInString(s) > MaxDescriptionLen {
		return ErrInvalidDescription
	}
	return nil
}
