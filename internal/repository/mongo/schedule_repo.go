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

const scheduleCollectionName = "weekly_schedule"

// mongoScheduleRepository implements repository.ScheduleRepository
type mongoScheduleRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduleRepository creates a new weekly schedule repository.
func NewMongoScheduleRepository(db *mongo.Database) repository.ScheduleRepository {
	return &mongoScheduleRepository{
		collection: db.Collection(scheduleCollectionName),
	}
}

// ListByUser returns the user's schedule entries ordered by day.
func (r *mongoScheduleRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ScheduleEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	entries := []domain.ScheduleEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}

// Upsert assigns a template to a day with one write keyed by the (userId, dayOfWeek) unique index.
func (r *mongoScheduleRepository) Upsert(ctx context.Context, userID primitive.ObjectID, dayOfWeek int, templateID primitive.ObjectID) error {
	filter := bson.M{"userId": userID, "dayOfWeek": dayOfWeek}
	update := bson.M{
		"$set": bson.M{
			"templateId": templateID,
			"updatedAt":  time.Now().UTC(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return translateError(err)
}

// DeleteDay turns a day into a rest day. Deleting an absent entry is not an error.
func (r *mongoScheduleRepository) DeleteDay(ctx context.Context, userID primitive.ObjectID, dayOfWeek int) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "dayOfWeek": dayOfWeek})
	return translateError(err)
}

// ClearTemplate removes every day that points at templateID.
func (r *mongoScheduleRepository) ClearTemplate(ctx context.Context, userID, templateID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID, "templateId": templateID})
	return translateError(err)
}

// DeleteByUser removes the user's whole schedule.
func (r *mongoScheduleRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return translateError(err)
}

func ensureScheduleIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "templateId", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
