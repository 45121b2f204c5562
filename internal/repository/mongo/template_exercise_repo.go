package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const templateExerciseCollectionName = "exercise_templates"

var orderIndexSort = bson.D{{Key: "orderIndex", Value: 1}, {Key: "_id", Value: 1}}

// mongoTemplateExerciseRepository implements repository.TemplateExerciseRepository
type mongoTemplateExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoTemplateExerciseRepository creates a new template exercise repository.
func NewMongoTemplateExerciseRepository(db *mongo.Database) repository.TemplateExerciseRepository {
	return &mongoTemplateExerciseRepository{
		collection: db.Collection(templateExerciseCollectionName),
	}
}

// Create inserts a new exercise into a template.
func (r *mongoTemplateExerciseRepository) Create(ctx context.Context, exercise *domain.ExerciseTemplate) (primitive.ObjectID, error) {
	if exercise.TemplateID.IsZero() || exercise.Name == "" {
		return primitive.NilObjectID, errors.New("template exercise requires templateId and name")
	}
	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		return primitive.NilObjectID, translateError(err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted template exercise ID")
	}
	return insertedID, nil
}

// ListByTemplate retrieves the exercises of one template ordered by orderIndex.
func (r *mongoTemplateExerciseRepository) ListByTemplate(ctx context.Context, templateID primitive.ObjectID) ([]domain.ExerciseTemplate, error) {
	return r.find(ctx, bson.M{"templateId": templateID})
}

// ListByTemplates retrieves the exercises of several templates in one query.
func (r *mongoTemplateExerciseRepository) ListByTemplates(ctx context.Context, templateIDs []primitive.ObjectID) ([]domain.ExerciseTemplate, error) {
	if len(templateIDs) == 0 {
		return []domain.ExerciseTemplate{}, nil
	}
	return r.find(ctx, bson.M{"templateId": bson.M{"$in": templateIDs}})
}

func (r *mongoTemplateExerciseRepository) find(ctx context.Context, filter bson.M) ([]domain.ExerciseTemplate, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(orderIndexSort))
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	exercises := []domain.ExerciseTemplate{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, translateError(err)
	}
	return exercises, nil
}

// CountByTemplate returns how many exercises a template has.
func (r *mongoTemplateExerciseRepository) CountByTemplate(ctx context.Context, templateID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"templateId": templateID})
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Delete removes one exercise, provided it belongs to templateID.
func (r *mongoTemplateExerciseRepository) Delete(ctx context.Context, id, templateID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "templateId": templateID})
	if err != nil {
		return translateError(err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByTemplates removes every exercise of the given templates.
func (r *mongoTemplateExerciseRepository) DeleteByTemplates(ctx context.Context, templateIDs []primitive.ObjectID) error {
	if len(templateIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"templateId": bson.M{"$in": templateIDs}})
	return translateError(err)
}

func ensureTemplateExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "templateId", Value: 1}, {Key: "orderIndex", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
