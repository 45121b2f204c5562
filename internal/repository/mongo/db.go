package mongo

import (
	"context"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI and verifies it with a ping.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The initial connection can succeed while the server is unresponsive.
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, translateError(err)
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewRepositories wires every MongoDB repository against db.
func NewRepositories(db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Users:             NewMongoUserRepository(db),
		Templates:         NewMongoTemplateRepository(db),
		TemplateExercises: NewMongoTemplateExerciseRepository(db),
		Schedule:          NewMongoScheduleRepository(db),
		Workouts:          NewMongoWorkoutRepository(db),
		Exercises:         NewMongoExerciseRepository(db),
		Streaks:           NewMongoStreakRepository(db),
		BodyMetrics:       NewMongoBodyMetricRepository(db),
		Themes:            NewMongoThemeRepository(db),
		Schema:            NewSchemaChecker(db),
	}
}
