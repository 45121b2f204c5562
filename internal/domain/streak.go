package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Streak tracks consecutive completed days for one user. Unique per UserID.
type Streak struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	CurrentStreak   int                `bson:"currentStreak" json:"currentStreak"`
	LongestStreak   int                `bson:"longestStreak" json:"longestStreak"` // Always >= CurrentStreak
	LastWorkoutDate *string            `bson:"lastWorkoutDate,omitempty" json:"lastWorkoutDate"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecordCompletion registers a fully completed workout on today (YYYY-MM-DD).
// The current streak grows at most once per date; the longest streak never shrinks.
// It reports whether the current streak was incremented.
func (s *Streak) RecordCompletion(today string) bool {
	incremented := false
	if s.LastWorkoutDate == nil || *s.LastWorkoutDate != today {
		s.CurrentStreak++
		incremented = true
	}
	s.LongestStreak = max(s.LongestStreak, s.CurrentStreak)
	last := today
	s.LastWorkoutDate = &last
	return incremented
}
