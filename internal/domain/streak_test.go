package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreak_RecordCompletion(t *testing.T) {
	last := "2024-01-01"
	streak := Streak{CurrentStreak: 4, LongestStreak: 5, LastWorkoutDate: &last}

	assert.True(t, streak.RecordCompletion("2024-01-02"))
	assert.Equal(t, 5, streak.CurrentStreak)
	assert.Equal(t, 5, streak.LongestStreak)
	require.NotNil(t, streak.LastWorkoutDate)
	assert.Equal(t, "2024-01-02", *streak.LastWorkoutDate)

	// Same day again is a no-op.
	assert.False(t, streak.RecordCompletion("2024-01-02"))
	assert.Equal(t, 5, streak.CurrentStreak)
	assert.Equal(t, 5, streak.LongestStreak)

	assert.True(t, streak.RecordCompletion("2024-01-03"))
	assert.Equal(t, 6, streak.CurrentStreak)
	assert.Equal(t, 6, streak.LongestStreak)
}

func TestStreak_RecordCompletion_FromEmpty(t *testing.T) {
	var streak Streak

	assert.True(t, streak.RecordCompletion("2024-03-10"))
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 1, streak.LongestStreak)
	assert.Equal(t, "2024-03-10", *streak.LastWorkoutDate)
}

func TestStreak_LongestNeverDecreases(t *testing.T) {
	streak := Streak{CurrentStreak: 0, LongestStreak: 10}
	previous := streak.LongestStreak
	for _, day := range []string{"2024-05-01", "2024-05-01", "2024-05-02", "2024-05-04", "2024-05-04"} {
		streak.RecordCompletion(day)
		assert.GreaterOrEqual(t, streak.LongestStreak, previous)
		assert.GreaterOrEqual(t, streak.LongestStreak, streak.CurrentStreak)
		previous = streak.LongestStreak
	}
	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 10, streak.LongestStreak)
}
