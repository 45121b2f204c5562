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

const bodyMetricCollectionName = "body_metrics"

// mongoBodyMetricRepository implements repository.BodyMetricRepository
type mongoBodyMetricRepository struct {
	collection *mongo.Collection
}

// NewMongoBodyMetricRepository creates a new body metric repository.
func NewMongoBodyMetricRepository(db *mongo.Database) repository.BodyMetricRepository {
	return &mongoBodyMetricRepository{
		collection: db.Collection(bodyMetricCollectionName),
	}
}

// Create appends a measurement.
func (r *mongoBodyMetricRepository) Create(ctx context.Context, metric *domain.BodyMetric) (primitive.ObjectID, error) {
	if metric.UserID.IsZero() || metric.Date == "" {
		return primitive.NilObjectID, errors.New("body metric requires userId and date")
	}
	metric.ID = primitive.NewObjectID()
	metric.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, metric)
	if err != nil {
		return primitive.NilObjectID, translateError(err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted body metric ID")
	}
	return insertedID, nil
}

// ListByUser returns the user's measurements, oldest first.
func (r *mongoBodyMetricRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.BodyMetric, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	metrics := []domain.BodyMetric{}
	if err = cursor.All(ctx, &metrics); err != nil {
		return nil, translateError(err)
	}
	return metrics, nil
}

// Latest returns the most recent measurement by date, then by creation time.
func (r *mongoBodyMetricRepository) Latest(ctx context.Context, userID primitive.ObjectID) (*domain.BodyMetric, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	var metric domain.BodyMetric
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}, findOptions).Decode(&metric); err != nil {
		return nil, translateError(err)
	}
	return &metric, nil
}

// DeleteByUser removes all of the user's measurements.
func (r *mongoBodyMetricRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return translateError(err)
}

func ensureBodyMetricIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
