package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults applied when a new template exercise omits sets or reps.
const (
	DefaultSets = 3
	DefaultReps = 10
)

// WorkoutTemplate is a reusable, named list of exercises owned by one user.
type WorkoutTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"` // Owner
	Name        string             `bson:"name" json:"name"`     // e.g., "Treino A", "Push Day"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Populated by the service when listing; not persisted on the template document.
	Exercises []ExerciseTemplate `bson:"-" json:"exercises"`
}

// ExerciseTemplate is one target exercise inside a WorkoutTemplate.
type ExerciseTemplate struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TemplateID    primitive.ObjectID `bson:"templateId" json:"templateId"`
	Name          string             `bson:"name" json:"name"`
	Sets          int                `bson:"sets" json:"sets"`
	Reps          int                `bson:"reps" json:"reps"`
	InitialWeight *float64           `bson:"initialWeight,omitempty" json:"initialWeight,omitempty"` // Seed for the first lastWeight
	OrderIndex    int                `bson:"orderIndex" json:"orderIndex"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// SortExerciseTemplates orders exercises by OrderIndex, keeping insertion order on ties.
func SortExerciseTemplates(exercises []ExerciseTemplate) {
	sort.SliceStable(exercises, func(i, j int) bool {
		return exercises[i].OrderIndex < exercises[j].OrderIndex
	})
}
