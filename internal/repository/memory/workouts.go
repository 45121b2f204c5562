package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutRepository struct {
	s *Store
}

// findByDate must be called with the lock held.
func (r *workoutRepository) findByDate(userID primitive.ObjectID, date string) *domain.Workout {
	for _, workout := range r.s.workouts {
		if workout.UserID == userID && workout.Date == date {
			return workout
		}
	}
	return nil
}

func (r *workoutRepository) GetByDate(_ context.Context, userID primitive.ObjectID, date string) (*domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	workout := r.findByDate(userID, date)
	if workout == nil {
		return nil, repository.ErrNotFound
	}
	found := *workout
	return &found, nil
}

func (r *workoutRepository) GetOrCreate(_ context.Context, userID primitive.ObjectID, date string) (*domain.Workout, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if workout := r.findByDate(userID, date); workout != nil {
		found := *workout
		return &found, false, nil
	}

	now := time.Now().UTC()
	workout := &domain.Workout{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Date:      date,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.workouts = append(r.s.workouts, workout)
	created := *workout
	return &created, true, nil
}

func (r *workoutRepository) SetCompleted(_ context.Context, id primitive.ObjectID, completed bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, workout := range r.s.workouts {
		if workout.ID == id {
			workout.Completed = completed
			workout.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *workoutRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int
	r.s.workouts, removed = deleteWhere(r.s.workouts, func(w *domain.Workout) bool { return w.ID == id })
	if removed == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *workoutRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	workouts := []domain.Workout{}
	for _, workout := range r.s.workouts {
		if workout.UserID == userID {
			workouts = append(workouts, *workout)
		}
	}
	sort.Slice(workouts, func(i, j int) bool { return workouts[i].Date < workouts[j].Date })
	return workouts, nil
}

func (r *workoutRepository) CountCompleted(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, workout := range r.s.workouts {
		if workout.UserID == userID && workout.Completed {
			count++
		}
	}
	return count, nil
}

func (r *workoutRepository) CompletedDates(_ context.Context, userID primitive.ObjectID, from, to string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	dates := []string{}
	for _, workout := range r.s.workouts {
		if workout.UserID == userID && workout.Completed && workout.Date >= from && workout.Date <= to {
			dates = append(dates, workout.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (r *workoutRepository) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.workouts, _ = deleteWhere(r.s.workouts, func(w *domain.Workout) bool { return w.UserID == userID })
	return nil
}

type exerciseRepository struct {
	s *Store
}

func (r *exerciseRepository) CreateMany(_ context.Context, exercises []domain.Exercise) ([]domain.Exercise, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := make([]domain.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if ex.WorkoutID.IsZero() {
			return nil, errors.New("exercise requires workoutId")
		}
		ex.ID = primitive.NewObjectID()
		ex.LastWeight = copyFloat(ex.LastWeight)
		created = append(created, ex)
	}
	for i := range created {
		stored := created[i]
		stored.LastWeight = copyFloat(created[i].LastWeight)
		r.s.exercises = append(r.s.exercises, &stored)
	}
	return created, nil
}

func (r *exerciseRepository) ListByWorkout(_ context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	return r.list(func(e *domain.Exercise) bool { return e.WorkoutID == workoutID }), nil
}

func (r *exerciseRepository) ListByWorkouts(_ context.Context, workoutIDs []primitive.ObjectID) ([]domain.Exercise, error) {
	return r.list(func(e *domain.Exercise) bool { return containsID(workoutIDs, e.WorkoutID) }), nil
}

func (r *exerciseRepository) list(match func(*domain.Exercise) bool) []domain.Exercise {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	exercises := []domain.Exercise{}
	for _, exercise := range r.s.exercises {
		if match(exercise) {
			found := *exercise
			found.LastWeight = copyFloat(exercise.LastWeight)
			exercises = append(exercises, found)
		}
	}
	sort.SliceStable(exercises, func(i, j int) bool { return exercises[i].OrderIndex < exercises[j].OrderIndex })
	return exercises
}

func (r *exerciseRepository) UpdateProgress(_ context.Context, id primitive.ObjectID, done bool, lastWeight *float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, exercise := range r.s.exercises {
		if exercise.ID == id {
			exercise.Done = done
			exercise.LastWeight = copyFloat(lastWeight)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *exerciseRepository) DeleteByWorkout(_ context.Context, workoutID primitive.ObjectID) error {
	return r.DeleteByWorkouts(context.Background(), []primitive.ObjectID{workoutID})
}

func (r *exerciseRepository) DeleteByWorkouts(_ context.Context, workoutIDs []primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.exercises, _ = deleteWhere(r.s.exercises, func(e *domain.Exercise) bool {
		return containsID(workoutIDs, e.WorkoutID)
	})
	return nil
}
