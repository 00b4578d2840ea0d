package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	tasks ports.TaskService
}

func NewTaskHandler(tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create handles POST /tasks/add-task.
//
// @Summary      Add a task
// @Description  The assignee's grade must be at least the task grade when both are set.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  domain.Task
// @Failure      401   {object}  errorResponse  "assignee not found"
// @Failure      417   {object}  errorResponse  "assignee grade too low"
// @Failure      422   {object}  errorResponse
// @Router       /tasks/add-task [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), toCreateTaskInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// Update handles PATCH /tasks/update-task.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        task_id  query     int                true  "Task ID"
// @Param        body     body      updateTaskRequest  true  "Fields to change"
// @Success      202      {object}  domain.Task
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /tasks/update-task [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	var taskID int64
	if err := echo.QueryParamsBinder(c).MustInt64("task_id", &taskID).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "task_id must be an integer")
	}

	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), taskID, toTaskPatch(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Task with id %d not found", taskID))
		case errors.Is(err, domain.ErrAssigneeNotFound) && req.Assignee != nil:
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("User with id %d not found", *req.Assignee))
		case errors.Is(err, domain.ErrProjectNotFound) && req.Project != nil:
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Project with id %d not found", *req.Project))
		case errors.Is(err, domain.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusAccepted, task)
}

// List handles GET /tasks/tasks-list.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {array}  domain.Task
// @Success      204
// @Router       /tasks/tasks-list [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.tasks.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}
	return tasksOrNoContent(c, tasks)
}

// Mine handles GET /tasks/my-tasks.
//
// @Summary      Tasks of the current user
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Task
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /tasks/my-tasks [get]
func (h *TaskHandler) Mine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	tasks, err := h.tasks.ListUserTasks(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return tasksOrNoContent(c, tasks)
}

// ForDay handles GET /tasks/tasks-for-day.
//
// @Summary      Tasks due on a date
// @Description  Also reports whether the date is a day off. Defaults to today.
// @Tags         tasks
// @Produce      json
// @Param        due_date  query     string  false  "Date (YYYY-MM-DD)"
// @Success      200       {array}   dayTasksResponse
// @Failure      422       {object}  errorResponse
// @Failure      502       {object}  errorResponse
// @Router       /tasks/tasks-for-day [get]
func (h *TaskHandler) ForDay(c echo.Context) error {
	var date *domain.Date
	if raw := c.QueryParam("due_date"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "due_date must be YYYY-MM-DD")
		}
		date = &d
	}

	day, err := h.tasks.TasksForDay(c.Request().Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDayTasksResponse(day))
}

// Candidate handles GET /tasks/get-candidate/:task_grade.
//
// @Summary      Pick an assignee
// @Description  Returns the user with the fewest tasks among those whose grade is at least task_grade.
// @Tags         tasks
// @Produce      json
// @Param        task_grade  path      int  true  "Required grade"
// @Success      200         {object}  domain.User
// @Failure      404         {object}  errorResponse
// @Router       /tasks/get-candidate/{task_grade} [get]
func (h *TaskHandler) Candidate(c echo.Context) error {
	var grade int
	if err := echo.PathParamsBinder(c).MustInt("task_grade", &grade).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "task_grade must be an integer")
	}

	user, err := h.tasks.SelectCandidate(c.Request().Context(), grade)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /tasks/delete-task/:task_id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        task_id  path      int  true  "Task ID"
// @Success      200      {object}  messageResponse
// @Failure      404      {object}  errorResponse
// @Router       /tasks/delete-task/{task_id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	var taskID int64
	if err := echo.PathParamsBinder(c).MustInt64("task_id", &taskID).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "task_id must be an integer")
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Task with id %d not found", taskID))
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Task with id %d deleted", taskID)})
}

func tasksOrNoContent(c echo.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, tasks)
}
