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

const streakCollectionName = "streaks"

// mongoStreakRepository implements repository.StreakRepository
type mongoStreakRepository struct {
	collection *mongo.Collection
}

// NewMongoStreakRepository creates a new streak repository.
func NewMongoStreakRepository(db *mongo.Database) repository.StreakRepository {
	return &mongoStreakRepository{
		collection: db.Collection(streakCollectionName),
	}
}

// GetByUser returns the user's streak or repository.ErrNotFound when none was recorded.
func (r *mongoStreakRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Streak, error) {
	var streak domain.Streak
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&streak); err != nil {
		return nil, translateError(err)
	}
	return &streak, nil
}

// Upsert writes the counters in a single update keyed by the userId unique index.
func (r *mongoStreakRepository) Upsert(ctx context.Context, streak *domain.Streak) error {
	streak.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"currentStreak":   streak.CurrentStreak,
			"longestStreak":   streak.LongestStreak,
			"lastWorkoutDate": streak.LastWorkoutDate,
			"updatedAt":       streak.UpdatedAt,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"userId": streak.UserID}, update, options.Update().SetUpsert(true))
	return translateError(err)
}

// DeleteByUser removes the user's streak.
func (r *mongoStreakRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return translateError(err)
}

func ensureStreakIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
