package handler

import (
	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/core/ports"
)

// --- Request → Service input ---

func toSignupInput(req signupRequest) ports.SignupInput {
	return ports.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Grade:    req.Grade,
	}
}

func toUserPatch(req updateUserRequest) domain.UserPatch {
	return domain.UserPatch{Name: req.Name, Grade: req.Grade}
}

func toCreateTaskInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Description: req.Description,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
		Grade:       req.Grade,
		Project:     req.Project,
	}
}

func toTaskPatch(req updateTaskRequest) domain.TaskPatch {
	return domain.TaskPatch{
		Description: req.Description,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
		Grade:       req.Grade,
		Project:     req.Project,
	}
}

// --- Service result → Response ---

func toTokenResponse(t *ports.AccessToken) tokenResponse {
	return tokenResponse{AccessToken: t.AccessToken, TokenType: t.TokenType}
}

// toDayTasksResponse wraps the agenda in a one-element list, which is the
// shape clients of tasks-for-day expect.
func toDayTasksResponse(d *ports.DayTasks) []dayTasksResponse {
	tasks := d.Tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return []dayTasksResponse{{DueDate: d.DueDate, IsDayOff: d.IsDayOff, Tasks: tasks}}
}
