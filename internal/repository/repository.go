package repository

import (
	"context"

	"github.com/arthurcerqueirm/gym-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer. Backends translate their native errors into these.
var (
	ErrNotFound         = RepositoryError("not found")
	ErrConflict         = RepositoryError("already exists")
	ErrMissingSchema    = RepositoryError("collection does not exist")
	ErrPermissionDenied = RepositoryError("permission denied by storage policy")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	SetAdmin(ctx context.Context, id primitive.ObjectID, isAdmin bool) error
	SetPasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error
	List(ctx context.Context) ([]domain.User, error) // Newest first
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TemplateRepository defines the interface for workout templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error) // Ordered by name
	Delete(ctx context.Context, id, userID primitive.ObjectID) error                            // Owner only
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// TemplateExerciseRepository defines the interface for the exercises inside a template.
type TemplateExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.ExerciseTemplate) (primitive.ObjectID, error)
	ListByTemplate(ctx context.Context, templateID primitive.ObjectID) ([]domain.ExerciseTemplate, error) // Ordered by orderIndex
	ListByTemplates(ctx context.Context, templateIDs []primitive.ObjectID) ([]domain.ExerciseTemplate, error)
	CountByTemplate(ctx context.Context, templateID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id, templateID primitive.ObjectID) error
	DeleteByTemplates(ctx context.Context, templateIDs []primitive.ObjectID) error
}

// ScheduleRepository defines the interface for the weekly schedule.
type ScheduleRepository interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ScheduleEntry, error)
	// Upsert assigns templateID to the day in a single atomic write keyed by (userId, dayOfWeek).
	Upsert(ctx context.Context, userID primitive.ObjectID, dayOfWeek int, templateID primitive.ObjectID) error
	DeleteDay(ctx context.Context, userID primitive.ObjectID, dayOfWeek int) error
	ClearTemplate(ctx context.Context, userID, templateID primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// WorkoutRepository defines the interface for dated workout instances.
type WorkoutRepository interface {
	GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.Workout, error)
	// GetOrCreate returns the workout for (userId, date), inserting an uncompleted one atomically
	// when absent. created reports whether this call inserted it.
	GetOrCreate(ctx context.Context, userID primitive.ObjectID, date string) (workout *domain.Workout, created bool, err error)
	SetCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) // Ordered by date
	CountCompleted(ctx context.Context, userID primitive.ObjectID) (int64, error)
	// CompletedDates returns the dates in [from, to] with a completed workout.
	CompletedDates(ctx context.Context, userID primitive.ObjectID, from, to string) ([]string, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// ExerciseRepository defines the interface for exercise instances of a workout.
type ExerciseRepository interface {
	CreateMany(ctx context.Context, exercises []domain.Exercise) ([]domain.Exercise, error) // Returns the exercises with ids set
	ListByWorkout(ctx context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error) // Ordered by orderIndex
	ListByWorkouts(ctx context.Context, workoutIDs []primitive.ObjectID) ([]domain.Exercise, error)
	UpdateProgress(ctx context.Context, id primitive.ObjectID, done bool, lastWeight *float64) error
	DeleteByWorkout(ctx context.Context, workoutID primitive.ObjectID) error
	DeleteByWorkouts(ctx context.Context, workoutIDs []primitive.ObjectID) error
}

// StreakRepository defines the interface for per-user streak counters.
type StreakRepository interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Streak, error)
	Upsert(ctx context.Context, streak *domain.Streak) error // Keyed by userId
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// BodyMetricRepository defines the interface for the body measurement series.
type BodyMetricRepository interface {
	Create(ctx context.Context, metric *domain.BodyMetric) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.BodyMetric, error) // Date ascending
	Latest(ctx context.Context, userID primitive.ObjectID) (*domain.BodyMetric, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// ThemeRepository defines the interface for persisted theme preferences.
type ThemeRepository interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.ThemePreference, error)
	Upsert(ctx context.Context, pref *domain.ThemePreference) error // Keyed by userId
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// SchemaChecker reports whether the backing store has been set up.
type SchemaChecker interface {
	// CheckSchema returns an error wrapping ErrMissingSchema when a required collection is absent.
	CheckSchema(ctx context.Context) error
}

// Repositories bundles every repository of one backend.
type Repositories struct {
	Users             UserRepository
	Templates         TemplateRepository
	TemplateExercises TemplateExerciseRepository
	Schedule          ScheduleRepository
	Workouts          WorkoutRepository
	Exercises         ExerciseRepository
	Streaks           StreakRepository
	BodyMetrics       BodyMetricRepository
	Themes            ThemeRepository
	Schema            SchemaChecker
}
