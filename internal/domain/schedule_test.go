package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeWeekday(t *testing.T) {
	cases := map[time.Weekday]int{
		time.Monday:    0,
		time.Tuesday:   1,
		time.Wednesday: 2,
		time.Thursday:  3,
		time.Friday:    4,
		time.Saturday:  5,
		time.Sunday:    6,
	}
	for weekday, want := range cases {
		assert.Equal(t, want, NormalizeWeekday(weekday), weekday.String())
	}
}

func TestResolveTemplateForDate(t *testing.T) {
	treinoA := primitive.NewObjectID()
	treinoB := primitive.NewObjectID()
	schedule := WeeklySchedule{0: treinoA, 6: treinoB}

	// 2024-01-01 is a Monday, 2024-01-07 a Sunday.
	monday := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)
	tuesday := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	got, ok := ResolveTemplateForDate(monday, schedule)
	require.True(t, ok)
	assert.Equal(t, treinoA, got)

	got, ok = ResolveTemplateForDate(sunday, schedule)
	require.True(t, ok)
	assert.Equal(t, treinoB, got)

	_, ok = ResolveTemplateForDate(tuesday, schedule)
	assert.False(t, ok, "tuesday is a rest day")

	// Same weekday one week later resolves identically.
	again, ok := ResolveTemplateForDate(monday.AddDate(0, 0, 7), schedule)
	require.True(t, ok)
	assert.Equal(t, treinoA, again)
}

func TestNewWeeklySchedule_SkipsInvalidEntries(t *testing.T) {
	valid := primitive.NewObjectID()
	schedule := NewWeeklySchedule([]ScheduleEntry{
		{DayOfWeek: 2, TemplateID: valid},
		{DayOfWeek: 7, TemplateID: primitive.NewObjectID()},
		{DayOfWeek: -1, TemplateID: primitive.NewObjectID()},
		{DayOfWeek: 3},
	})

	require.Len(t, schedule, 1)
	assert.Equal(t, valid, schedule[2])
}
