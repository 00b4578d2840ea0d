package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskman/taskman-api/internal/core/domain"
)

type ProjectRepository struct {
	col *mongo.Collection
	ids sequence
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{
		col: db.Collection(collectionProjects),
		ids: newSequence(db, collectionProjects),
	}
}

type projectDoc struct {
	ID          int64   `bson:"_id"`
	Name        string  `bson:"project_name"`
	Description *string `bson:"project_description"`
}

func (d projectDoc) toDomain() domain.Project {
	return domain.Project{ID: d.ID, Name: d.Name, Description: d.Description}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := projectDoc{ID: id, Name: project.Name, Description: project.Description}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	created := doc.toDomain()
	return &created, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, sortByID)
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	var docs []projectDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, d.toDomain())
	}
	return projects, nil
}
