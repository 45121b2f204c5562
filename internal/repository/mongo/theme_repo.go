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

const themeCollectionName = "theme_preferences"

// mongoThemeRepository implements repository.ThemeRepository
type mongoThemeRepository struct {
	collection *mongo.Collection
}

// NewMongoThemeRepository creates a new theme preference repository.
func NewMongoThemeRepository(db *mongo.Database) repository.ThemeRepository {
	return &mongoThemeRepository{
		collection: db.Collection(themeCollectionName),
	}
}

// GetByUser returns the saved preference or repository.ErrNotFound.
func (r *mongoThemeRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.ThemePreference, error) {
	var pref domain.ThemePreference
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&pref); err != nil {
		return nil, translateError(err)
	}
	if pref.CustomColors == nil {
		pref.CustomColors = map[string]string{}
	}
	return &pref, nil
}

// Upsert replaces the preference keyed by userId.
func (r *mongoThemeRepository) Upsert(ctx context.Context, pref *domain.ThemePreference) error {
	pref.UpdatedAt = time.Now().UTC()
	colors := pref.CustomColors
	if colors == nil {
		colors = map[string]string{}
	}
	update := bson.M{
		"$set": bson.M{
			"paletteKey":   pref.PaletteKey,
			"mode":         pref.Mode,
			"customColors": colors,
			"updatedAt":    pref.UpdatedAt,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"userId": pref.UserID}, update, options.Update().SetUpsert(true))
	return translateError(err)
}

// DeleteByUser removes the user's preference.
func (r *mongoThemeRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return translateError(err)
}

func ensureThemeIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
