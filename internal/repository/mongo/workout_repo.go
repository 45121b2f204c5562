package mongo

import (
	"context"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// GetByDate retrieves the user's workout for a calendar day.
func (r *mongoWorkoutRepository) GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.Workout, error) {
	var workout domain.Workout
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&workout); err != nil {
		return nil, translateError(err)
	}
	return &workout, nil
}

// GetOrCreate upserts on the (userId, date) unique index so two concurrent visits
// end up sharing one workout.
func (r *mongoWorkoutRepository) GetOrCreate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.Workout, bool, error) {
	now := time.Now().UTC()
	filter := bson.M{"userId": userID, "date": date}
	update := bson.M{
		"$setOnInsert": bson.M{
			"completed": false,
			"createdAt": now,
			"updatedAt": now,
		},
	}

	created := false
	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	switch {
	case err == nil:
		created = result.UpsertedCount > 0
	case mongo.IsDuplicateKeyError(err):
		// Lost the race against another upsert; the document exists now.
	default:
		return nil, false, translateError(err)
	}

	workout, err := r.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, false, err
	}
	return workout, created, nil
}

// SetCompleted persists the completion flag.
func (r *mongoWorkoutRepository) SetCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error {
	update := bson.M{"$set": bson.M{"completed": completed, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a single workout. Its exercises are removed by the caller.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateError(err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByUser retrieves all of the user's workouts ordered by date.
func (r *mongoWorkoutRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, translateError(err)
	}
	return workouts, nil
}

// CountCompleted returns how many completed workouts the user has.
func (r *mongoWorkoutRepository) CountCompleted(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID, "completed": true})
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// CompletedDates returns the dates in [from, to] on which the user completed a workout.
// Dates are YYYY-MM-DD strings, so lexical comparison matches calendar order.
func (r *mongoWorkoutRepository) CompletedDates(ctx context.Context, userID primitive.ObjectID, from, to string) ([]string, error) {
	filter := bson.M{
		"userId":    userID,
		"completed": true,
		"date":      bson.M{"$gte": from, "$lte": to},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetProjection(bson.M{"date": 1})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	dates := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			Date string `bson:"date"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, translateError(err)
		}
		dates = append(dates, doc.Date)
	}
	if err := cursor.Err(); err != nil {
		return nil, translateError(err)
	}
	return dates, nil
}

// DeleteByUser removes all of the user's workouts.
func (r *mongoWorkoutRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return translateError(err)
}

func ensureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "completed", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
