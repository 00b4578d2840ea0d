package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskman/taskman-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.User
	err    error // if set, every call returns it
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	if u.Grade != nil {
		g := *u.Grade
		clone.Grade = &g
	}
	return &clone
}

// add stores u directly, bypassing hashing, and returns its ID.
func (r *stubUserRepo) add(name string, grade *int) int64 {
	created, _ := r.Create(context.Background(), &domain.User{Email: name + "@example.com", Name: name, Grade: grade})
	return created.ID
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) sorted() []domain.User {
	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubUserRepo) ListByMinGrade(_ context.Context, minGrade int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.User{}
	for _, u := range r.sorted() {
		if u.Grade != nil && *u.Grade >= minGrade {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.sorted(), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)
	return nil
}

type stubTaskRepo struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]domain.Task
	listErr error
	listed  bool // set when List was called
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[int64]domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *task
	stored.ID = r.nextID
	r.byID[stored.ID] = stored
	return &stored, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &t, nil
}

func (r *stubTaskRepo) filter(keep func(domain.Task) bool) []domain.Task {
	out := []domain.Task{}
	for _, t := range r.byID {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubTaskRepo) List(_ context.Context) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listed = true
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.filter(func(domain.Task) bool { return true }), nil
}

func (r *stubTaskRepo) ListByAssignee(_ context.Context, userID int64) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(t domain.Task) bool { return t.Assignee == userID }), nil
}

func (r *stubTaskRepo) ListByDueDate(_ context.Context, due domain.Date) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.filter(func(t domain.Task) bool { return t.DueDate.Equal(due) }), nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.byID[task.ID] = *task
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubProjectRepo struct {
	nextID int64
	byID   map[int64]domain.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[int64]domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.nextID++
	stored := *p
	stored.ID = r.nextID
	r.byID[stored.ID] = stored
	return &stored, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	out := []domain.Project{}
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubDayOff struct {
	days map[string]bool
	err  error
}

func (s *stubDayOff) IsDayOff(_ context.Context, date domain.Date) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.days[date.String()], nil
}
