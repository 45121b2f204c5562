package domain

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseField names the fields a user may change on an exercise before finalizing.
type ExerciseField string

const (
	FieldDone      ExerciseField = "done"
	FieldNewWeight ExerciseField = "newWeight"
)

var (
	ErrUnknownExercise   = errors.New("exercise is not part of this workout")
	ErrUnknownField      = errors.New("unknown exercise field")
	ErrInvalidFieldValue = errors.New("invalid value for exercise field")
)

// ExerciseProgress is an exercise plus the weight entered during the session, if any.
type ExerciseProgress struct {
	Exercise
	NewWeight *float64 `json:"newWeight"`
}

// FinalWeight is the weight to persist: the entered one, or the previous one when nothing was entered.
func (p ExerciseProgress) FinalWeight() *float64 {
	if p.NewWeight != nil {
		return p.NewWeight
	}
	return p.LastWeight
}

// WorkoutSession holds the in-progress state of one day's workout.
// Changes stay local until the workout is finalized.
type WorkoutSession struct {
	Workout   Workout            `json:"workout"`
	Exercises []ExerciseProgress `json:"exercises"`
}

// NewWorkoutSession starts a session with no entered weights.
func NewWorkoutSession(workout Workout, exercises []Exercise) *WorkoutSession {
	progress := make([]ExerciseProgress, len(exercises))
	for i, ex := range exercises {
		progress[i] = ExerciseProgress{Exercise: ex}
	}
	return &WorkoutSession{Workout: workout, Exercises: progress}
}

// SetExerciseField applies a single field change. Done expects a bool; newWeight
// accepts a float64, *float64, int, or nil to clear the entered weight.
func (s *WorkoutSession) SetExerciseField(exerciseID primitive.ObjectID, field ExerciseField, value any) error {
	idx := -1
	for i := range s.Exercises {
		if s.Exercises[i].ID == exerciseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownExercise, exerciseID.Hex())
	}

	switch field {
	case FieldDone:
		done, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s must be a boolean", ErrInvalidFieldValue, field)
		}
		s.Exercises[idx].Done = done
	case FieldNewWeight:
		weight, err := weightValue(value)
		if err != nil {
			return err
		}
		s.Exercises[idx].NewWeight = weight
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func weightValue(value any) (*float64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *float64:
		if v == nil {
			return nil, nil
		}
		w := *v
		return &w, nil
	case float64:
		return &v, nil
	case int:
		w := float64(v)
		return &w, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidFieldValue, FieldNewWeight)
	}
}

// AllDone reports whether every exercise is marked done. An empty session counts as done.
func (s *WorkoutSession) AllDone() bool {
	for _, ex := range s.Exercises {
		if !ex.Done {
			return false
		}
	}
	return true
}

// DoneCount returns how many exercises are marked done.
func (s *WorkoutSession) DoneCount() int {
	count := 0
	for _, ex := range s.Exercises {
		if ex.Done {
			count++
		}
	}
	return count
}
