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

const templateCollectionName = "workout_templates"

// mongoTemplateRepository implements repository.TemplateRepository
type mongoTemplateRepository struct {
	collection *mongo.Collection
}

// NewMongoTemplateRepository creates a new workout template repository.
func NewMongoTemplateRepository(db *mongo.Database) repository.TemplateRepository {
	return &mongoTemplateRepository{
		collection: db.Collection(templateCollectionName),
	}
}

// Create inserts a new template.
func (r *mongoTemplateRepository) Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	if template.UserID.IsZero() || template.Name == "" {
		return primitive.NilObjectID, errors.New("template requires userId and name")
	}
	template.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, template)
	if err != nil {
		return primitive.NilObjectID, translateError(err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted template ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single template by its ID.
func (r *mongoTemplateRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	var template domain.WorkoutTemplate
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&template); err != nil {
		return nil, translateError(err)
	}
	return &template, nil
}

// ListByUser retrieves the user's templates ordered by name.
func (r *mongoTemplateRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	templates := []domain.WorkoutTemplate{}
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, translateError(err)
	}
	return templates, nil
}

// Delete removes a template. The filter ensures the caller owns it.
func (r *mongoTemplateRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return translateError(err)
	}
	if result.DeletedCount == 0 {
		// Not found OR not owned by this user.
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUser removes every template owned by userID.
func (r *mongoTemplateRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return translateError(err)
}

func ensureTemplateIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
