package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(year int, completed map[string]struct{}) []CalendarDay {
	var days []CalendarDay
	for day := range YearHeatmap(year, completed) {
		days = append(days, day)
	}
	return days
}

func TestYearHeatmap_NonLeapYear(t *testing.T) {
	days := collect(2023, nil)
	require.Len(t, days, 365)
	assert.Equal(t, 365, DaysInYear(2023))

	seen := make(map[string]struct{}, len(days))
	for _, day := range days {
		assert.True(t, strings.HasPrefix(day.Date, "2023-"), day.Date)
		_, dup := seen[day.Date]
		assert.False(t, dup, day.Date)
		seen[day.Date] = struct{}{}
		assert.False(t, day.HasWorkout)
	}
	assert.Equal(t, "2023-01-01", days[0].Date)
	assert.Equal(t, "2023-12-31", days[364].Date)
}

func TestYearHeatmap_LeapYear(t *testing.T) {
	days := collect(2024, nil)
	require.Len(t, days, 366)
	assert.Equal(t, 366, DaysInYear(2024))
	assert.Equal(t, "2024-02-29", days[59].Date)
}

func TestYearHeatmap_MarksCompletedDaysAndRestarts(t *testing.T) {
	completed := map[string]struct{}{
		"2024-01-02": {},
		"2024-07-15": {},
		"2023-12-31": {}, // other year, ignored
	}
	heatmap := YearHeatmap(2024, completed)

	for range 2 {
		var marked []string
		count := 0
		for day := range heatmap {
			count++
			if day.HasWorkout {
				marked = append(marked, day.Date)
			}
		}
		assert.Equal(t, 366, count)
		assert.Equal(t, []string{"2024-01-02", "2024-07-15"}, marked)
	}
}

func TestYearHeatmap_EarlyStop(t *testing.T) {
	count := 0
	for range YearHeatmap(2024, nil) {
		count++
		if count == 10 {
			break
		}
	}
	assert.Equal(t, 10, count)
}
