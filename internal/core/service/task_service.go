package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/core/ports"
	"github.com/taskman/taskman-api/internal/pkg/metrics"
)

// TaskService enforces the assignment policy around task persistence and
// picks candidates for new tasks.
type TaskService struct {
	tasks    ports.TaskRepository
	users    ports.UserRepository
	projects ports.ProjectRepository
	dayOff   ports.DayOffChecker
	now      func() time.Time
	logger   zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	users ports.UserRepository,
	projects ports.ProjectRepository,
	dayOff ports.DayOffChecker,
	now func() time.Time,
	logger zerolog.Logger,
) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		tasks:    tasks,
		users:    users,
		projects: projects,
		dayOff:   dayOff,
		now:      now,
		logger:   logger,
	}
}

func (s *TaskService) today() domain.Date {
	return domain.DateOf(s.now())
}

// CreateTask validates input against the assignee's grade and stores the task.
// The project reference is not looked up here.
func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := domain.ValidateGrade(input.Grade); err != nil {
		return nil, err
	}

	today := s.today()
	due := today.AddDays(1)
	if input.DueDate != nil {
		due = *input.DueDate
	}
	if due.Before(today) {
		return nil, domain.ErrDueDateInPast
	}

	assignee, err := s.users.FindByID(ctx, input.Assignee)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.TaskRejectionsTotal.WithLabelValues("assignee_not_found").Inc()
			return nil, domain.ErrAssigneeNotFound
		}
		return nil, err
	}

	if !domain.CanAssign(assignee.Grade, input.Grade) {
		metrics.TaskRejectionsTotal.WithLabelValues("insufficient_grade").Inc()
		s.logger.Info().
			Int64("assignee", assignee.ID).
			Int("user_grade", *assignee.Grade).
			Int("task_grade", *input.Grade).
			Msg("task rejected: insufficient grade")
		return nil, fmt.Errorf("%w: user %s has grade %d, task requires %d",
			domain.ErrInsufficientGrade, assignee.Name, *assignee.Grade, *input.Grade)
	}

	created, err := s.tasks.Create(ctx, &domain.Task{
		Description: input.Description,
		Assignee:    assignee.ID,
		DueDate:     due,
		Grade:       input.Grade,
		Project:     input.Project,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error().Err(err).Msg("failed to create task")
		}
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	s.logger.Info().
		Int64("task_id", created.ID).
		Int64("assignee", created.Assignee).
		Msg("task created")
	return created, nil
}

// UpdateTask applies the fields present in patch. References in the patch must
// exist. The grade constraint is only enforced at creation and is not
// re-checked here.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Assignee != nil {
		if _, err := s.users.FindByID(ctx, *patch.Assignee); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrAssigneeNotFound
			}
			return nil, err
		}
	}
	if patch.Project != nil {
		if _, err := s.projects.FindByID(ctx, *patch.Project); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		if err := domain.ValidateDescription(*patch.Description); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateGrade(patch.Grade); err != nil {
		return nil, err
	}
	if patch.DueDate != nil && patch.DueDate.Before(s.today()) {
		return nil, domain.ErrDueDateInPast
	}

	patch.Apply(task)
	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Int64("task_id", id).Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().Int64("task_id", id).Msg("task updated")
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *TaskService) ListUserTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.tasks.ListByAssignee(ctx, userID)
}

// TasksForDay queries the store and the day-off service concurrently.
func (s *TaskService) TasksForDay(ctx context.Context, date *domain.Date) (*ports.DayTasks, error) {
	day := s.today()
	if date != nil {
		day = *date
	}

	var (
		tasks    []domain.Task
		isDayOff bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.ListByDueDate(gctx, day)
		return err
	})
	g.Go(func() error {
		var err error
		isDayOff, err = s.dayOff.IsDayOff(gctx, day)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).Str("due_date", day.String()).Msg("tasks for day failed")
		return nil, err
	}

	return &ports.DayTasks{DueDate: day, IsDayOff: isDayOff, Tasks: tasks}, nil
}

// SelectCandidate returns the eligible user with the fewest tasks.
func (s *TaskService) SelectCandidate(ctx context.Context, minGrade int) (*domain.User, error) {
	users, err := s.users.ListByMinGrade(ctx, minGrade)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		metrics.CandidateSelectionsTotal.WithLabelValues("none_eligible").Inc()
		return nil, domain.ErrNoEligibleUsers
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	picked, err := domain.LeastLoaded(users, tasks)
	if err != nil {
		return nil, err
	}

	metrics.CandidateSelectionsTotal.WithLabelValues("selected").Inc()
	s.logger.Debug().
		Int("min_grade", minGrade).
		Int("eligible", len(users)).
		Int64("user_id", picked.ID).
		Msg("candidate selected")
	return picked, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("task_id", id).Msg("task deleted")
	return nil
}
