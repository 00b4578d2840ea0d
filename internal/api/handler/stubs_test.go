package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn  func(ctx context.Context, input ports.SignupInput) (int64, error)
	loginFn   func(ctx context.Context, email, password string) (*ports.AccessToken, error)
	resolveFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, input ports.SignupInput) (int64, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AccessToken, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	return s.resolveFn(ctx, token)
}

type stubUserService struct {
	updateFn func(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	listFn   func(ctx context.Context) ([]domain.User, error)
}

func (s *stubUserService) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

type stubTaskService struct {
	createFn    func(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error)
	updateFn    func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	listFn      func(ctx context.Context) ([]domain.Task, error)
	listUserFn  func(ctx context.Context, userID int64) ([]domain.Task, error)
	forDayFn    func(ctx context.Context, date *domain.Date) (*ports.DayTasks, error)
	candidateFn func(ctx context.Context, minGrade int) (*domain.User, error)
	deleteFn    func(ctx context.Context, id int64) error
}

func (s *stubTaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, input)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubTaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.listFn(ctx)
}

func (s *stubTaskService) ListUserTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.listUserFn(ctx, userID)
}

func (s *stubTaskService) TasksForDay(ctx context.Context, date *domain.Date) (*ports.DayTasks, error) {
	return s.forDayFn(ctx, date)
}

func (s *stubTaskService) SelectCandidate(ctx context.Context, minGrade int) (*domain.User, error) {
	return s.candidateFn(ctx, minGrade)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubProjectService struct {
	createFn func(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error)
	listFn   func(ctx context.Context) ([]domain.Project, error)
}

func (s *stubProjectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, input)
}

func (s *stubProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.listFn(ctx)
}

func intPtr(v int) *int { return &v }

// newContext builds an echo context with the validator installed.
func newContext(method, target, contentType string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func jsonContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(method, target, echo.MIMEApplicationJSON, strings.NewReader(body))
}

func formContext(target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	return newContext("POST", target, echo.MIMEApplicationForm, strings.NewReader(form.Encode()))
}

// httpStatus extracts the status code of an *echo.HTTPError, or 0.
func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
