package mongo

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/multierr"
)

// RequiredCollections lists every collection the application reads or writes.
var RequiredCollections = []string{
	userCollectionName,
	templateCollectionName,
	templateExerciseCollectionName,
	scheduleCollectionName,
	workoutCollectionName,
	exerciseCollectionName,
	streakCollectionName,
	bodyMetricCollectionName,
	themeCollectionName,
}

var indexBuilders = map[string]func(context.Context, *mongo.Collection) error{
	userCollectionName:             ensureUserIndexes,
	templateCollectionName:         ensureTemplateIndexes,
	templateExerciseCollectionName: ensureTemplateExerciseIndexes,
	scheduleCollectionName:         ensureScheduleIndexes,
	workoutCollectionName:          ensureWorkoutIndexes,
	exerciseCollectionName:         ensureExerciseIndexes,
	streakCollectionName:           ensureStreakIndexes,
	bodyMetricCollectionName:       ensureBodyMetricIndexes,
	themeCollectionName:            ensureThemeIndexes,
}

// Migrate creates missing collections and their indexes. It is safe to run repeatedly.
// Created lists the collections that did not exist before.
func Migrate(ctx context.Context, db *mongo.Database) (created []string, err error) {
	existing, err := existingCollections(ctx, db)
	if err != nil {
		return nil, err
	}

	for _, name := range RequiredCollections {
		if _, ok := existing[name]; !ok {
			if createErr := db.CreateCollection(ctx, name); createErr != nil {
				err = multierr.Append(err, fmt.Errorf("create collection %s: %w", name, translateError(createErr)))
				continue
			}
			created = append(created, name)
		}
		if indexErr := indexBuilders[name](ctx, db.Collection(name)); indexErr != nil {
			err = multierr.Append(err, fmt.Errorf("indexes for %s: %w", name, translateError(indexErr)))
		}
	}
	return created, err
}

// schemaChecker implements repository.SchemaChecker. Once every collection has been seen
// the result is cached, since collections are never dropped by the application.
type schemaChecker struct {
	db      *mongo.Database
	healthy atomic.Bool
}

// NewSchemaChecker creates a checker for db.
func NewSchemaChecker(db *mongo.Database) repository.SchemaChecker {
	return &schemaChecker{db: db}
}

func (c *schemaChecker) CheckSchema(ctx context.Context) error {
	if c.healthy.Load() {
		return nil
	}
	existing, err := existingCollections(ctx, c.db)
	if err != nil {
		return err
	}

	var missing []string
	for _, name := range RequiredCollections {
		if _, ok := existing[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", repository.ErrMissingSchema, strings.Join(missing, ", "))
	}

	c.healthy.Store(true)
	return nil
}

func existingCollections(ctx context.Context, db *mongo.Database) (map[string]struct{}, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, translateError(err)
	}
	existing := make(map[string]struct{}, len(names))
	for _, name := range names {
		existing[name] = struct{}{}
	}
	return existing, nil
}
