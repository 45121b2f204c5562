package domain

import (
	"iter"
	"time"
)

// CalendarDay is one cell of the yearly heatmap.
type CalendarDay struct {
	Date       string `json:"date"`
	HasWorkout bool   `json:"hasWorkout"`
}

// YearHeatmap yields every calendar day of year in order, flagged when the date is in completed.
// The sequence is finite and may be ranged over any number of times.
func YearHeatmap(year int, completed map[string]struct{}) iter.Seq[CalendarDay] {
	return func(yield func(CalendarDay) bool) {
		for day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); day.Year() == year; day = day.AddDate(0, 0, 1) {
			date := day.Format(DateLayout)
			_, hasWorkout := completed[date]
			if !yield(CalendarDay{Date: date, HasWorkout: hasWorkout}) {
				return
			}
		}
	}
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
