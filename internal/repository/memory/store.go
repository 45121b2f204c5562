// Package memory keeps every repository in process memory. It backs local runs
// with database.driver=memory and serves as the test double for the service and api layers.
package memory

import (
	"context"
	"sync"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds all collections behind a single lock. Records are copied on the way in
// and out so callers never share memory with the store.
type Store struct {
	mu sync.RWMutex

	users             []*domain.User
	templates         []*domain.WorkoutTemplate
	templateExercises []*domain.ExerciseTemplate
	schedule          []*domain.ScheduleEntry
	workouts          []*domain.Workout
	exercises         []*domain.Exercise
	streaks           map[primitive.ObjectID]*domain.Streak
	bodyMetrics       []*domain.BodyMetric
	themes            map[primitive.ObjectID]*domain.ThemePreference
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		streaks: make(map[primitive.ObjectID]*domain.Streak),
		themes:  make(map[primitive.ObjectID]*domain.ThemePreference),
	}
}

// NewRepositories returns every repository backed by a fresh Store.
func NewRepositories() repository.Repositories {
	return NewStore().Repositories()
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:             &userRepository{s},
		Templates:         &templateRepository{s},
		TemplateExercises: &templateExerciseRepository{s},
		Schedule:          &scheduleRepository{s},
		Workouts:          &workoutRepository{s},
		Exercises:         &exerciseRepository{s},
		Streaks:           &streakRepository{s},
		BodyMetrics:       &bodyMetricRepository{s},
		Themes:            &themeRepository{s},
		Schema:            schemaChecker{},
	}
}

// schemaChecker always succeeds: memory collections exist as soon as the store does.
type schemaChecker struct{}

func (schemaChecker) CheckSchema(context.Context) error { return nil }

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// deleteWhere removes the items matching drop, preserving order, and returns how many were removed.
func deleteWhere[T any](items []*T, drop func(*T) bool) ([]*T, int) {
	kept := items[:0]
	removed := 0
	for _, item := range items {
		if drop(item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	clear(items[len(kept):])
	return kept, removed
}
