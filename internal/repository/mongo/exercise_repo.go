package mongo

import (
	"context"
	"errors"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository for workout exercise instances.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new exercise instance repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// CreateMany inserts a batch of exercises and returns them with their new ids.
func (r *mongoExerciseRepository) CreateMany(ctx context.Context, exercises []domain.Exercise) ([]domain.Exercise, error) {
	if len(exercises) == 0 {
		return []domain.Exercise{}, nil
	}

	created := make([]domain.Exercise, len(exercises))
	docs := make([]interface{}, len(exercises))
	for i, ex := range exercises {
		if ex.WorkoutID.IsZero() {
			return nil, errors.New("exercise requires workoutId")
		}
		ex.ID = primitive.NewObjectID()
		created[i] = ex
		docs[i] = ex
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, translateError(err)
	}
	return created, nil
}

// ListByWorkout retrieves a workout's exercises ordered by orderIndex.
func (r *mongoExerciseRepository) ListByWorkout(ctx context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{"workoutId": workoutID})
}

// ListByWorkouts retrieves the exercises of several workouts in one query.
func (r *mongoExerciseRepository) ListByWorkouts(ctx context.Context, workoutIDs []primitive.ObjectID) ([]domain.Exercise, error) {
	if len(workoutIDs) == 0 {
		return []domain.Exercise{}, nil
	}
	return r.find(ctx, bson.M{"workoutId": bson.M{"$in": workoutIDs}})
}

func (r *mongoExerciseRepository) find(ctx context.Context, filter bson.M) ([]domain.Exercise, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(orderIndexSort))
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, translateError(err)
	}
	return exercises, nil
}

// UpdateProgress writes the two mutable fields of an exercise instance.
func (r *mongoExerciseRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, done bool, lastWeight *float64) error {
	set := bson.M{"done": done}
	update := bson.M{"$set": set}
	if lastWeight != nil {
		set["lastWeight"] = *lastWeight
	} else {
		update["$unset"] = bson.M{"lastWeight": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByWorkout removes all exercises of a workout.
func (r *mongoExerciseRepository) DeleteByWorkout(ctx context.Context, workoutID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"workoutId": workoutID})
	return translateError(err)
}

// DeleteByWorkouts removes all exercises of the given workouts.
func (r *mongoExerciseRepository) DeleteByWorkouts(ctx context.Context, workoutIDs []primitive.ObjectID) error {
	if len(workoutIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"workoutId": bson.M{"$in": workoutIDs}})
	return translateError(err)
}

func ensureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "workoutId", Value: 1}, {Key: "orderIndex", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
