package handler

import "github.com/taskman/taskman-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- auth ---

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name"     validate:"required"`
	Grade    *int   `json:"grade"    validate:"omitempty,min=1,max=10"`
}

// loginRequest mirrors the OAuth2 password form: the email goes in username.
type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type updateUserRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1"`
	Grade *int    `json:"grade" validate:"omitempty,min=1,max=10"`
}

// --- tasks ---

type createTaskRequest struct {
	Description string       `json:"task_description" validate:"required,max=300"`
	Assignee    int64        `json:"assignee"`
	DueDate     *domain.Date `json:"due_date"         swaggertype:"string" example:"2030-01-31"`
	Grade       *int         `json:"grade"            validate:"omitempty,min=1,max=10"`
	Project     *int64       `json:"project"`
}

type updateTaskRequest struct {
	Description *string      `json:"task_description" validate:"omitempty,min=1,max=300"`
	Assignee    *int64       `json:"assignee"`
	DueDate     *domain.Date `json:"due_date"         swaggertype:"string" example:"2030-01-31"`
	Grade       *int         `json:"grade"            validate:"omitempty,min=1,max=10"`
	Project     *int64       `json:"project"`
}

type dayTasksResponse struct {
	DueDate  domain.Date   `json:"due_date" swaggertype:"string" example:"2030-01-31"`
	IsDayOff bool          `json:"is_day_off"`
	Tasks    []domain.Task `json:"tasks"`
}

// --- projects ---

type createProjectRequest struct {
	Name        string  `json:"project_name"        validate:"required"`
	Description *string `json:"project_description"`
}
