package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the calendar-day format used for every stored date.
const DateLayout = "2006-01-02"

// FormatDate renders t as a calendar day in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Workout is the concrete, date-stamped materialization of a template. Unique per (UserID, Date).
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD
	Completed bool               `bson:"completed" json:"completed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Exercise is one exercise instance inside a Workout.
// Only Done and LastWeight change after it is materialized.
type Exercise struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID  primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	Name       string             `bson:"name" json:"name"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
	LastWeight *float64           `bson:"lastWeight,omitempty" json:"lastWeight"`
	Done       bool               `bson:"done" json:"done"`
	OrderIndex int                `bson:"orderIndex" json:"orderIndex"`
}

// MaterializeExercises copies a template's exercises into fresh instances for workoutID.
// Instances are numbered by their position after sorting by OrderIndex.
func MaterializeExercises(workoutID primitive.ObjectID, templates []ExerciseTemplate) []Exercise {
	ordered := make([]ExerciseTemplate, len(templates))
	copy(ordered, templates)
	SortExerciseTemplates(ordered)

	exercises := make([]Exercise, 0, len(ordered))
	for i, tmpl := range ordered {
		var weight *float64
		if tmpl.InitialWeight != nil {
			w := *tmpl.InitialWeight
			weight = &w
		}
		exercises = append(exercises, Exercise{
			WorkoutID:  workoutID,
			Name:       tmpl.Name,
			Sets:       tmpl.Sets,
			Reps:       tmpl.Reps,
			LastWeight: weight,
			Done:       false,
			OrderIndex: i,
		})
	}
	return exercises
}
