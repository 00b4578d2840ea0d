package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskman/taskman-api/internal/core/domain"
)

// TaskRepository stores tasks with due dates as YYYY-MM-DD strings, which
// keeps equality lookups independent of time zones. References to users and
// projects are not enforced by this store.
type TaskRepository struct {
	col *mongo.Collection
	ids sequence
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		col: db.Collection(collectionTasks),
		ids: newSequence(db, collectionTasks),
	}
}

type taskDoc struct {
	ID          int64  `bson:"_id"`
	Description string `bson:"task_description"`
	Assignee    int64  `bson:"assignee"`
	DueDate     string `bson:"due_date"`
	Grade       *int   `bson:"grade"`
	Project     *int64 `bson:"project"`
}

func toTaskDoc(t *domain.Task) taskDoc {
	return taskDoc{
		ID:          t.ID,
		Description: t.Description,
		Assignee:    t.Assignee,
		DueDate:     t.DueDate.String(),
		Grade:       t.Grade,
		Project:     t.Project,
	}
}

func (d taskDoc) toDomain() (domain.Task, error) {
	due, err := domain.ParseDate(d.DueDate)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %d: %w", d.ID, err)
	}
	return domain.Task{
		ID:          d.ID,
		Description: d.Description,
		Assignee:    d.Assignee,
		DueDate:     due,
		Grade:       d.Grade,
		Project:     d.Project,
	}, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	doc := toTaskDoc(task)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	created.ID = id
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	t, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) find(ctx context.Context, filter bson.M) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, sortByID)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, d := range docs {
		t, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	return r.find(ctx, bson.M{})
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, userID int64) ([]domain.Task, error) {
	return r.find(ctx, bson.M{"assignee": userID})
}

func (r *TaskRepository) ListByDueDate(ctx context.Context, due domain.Date) ([]domain.Task, error) {
	return r.find(ctx, bson.M{"due_date": due.String()})
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": task.ID}, toTaskDoc(task))
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
