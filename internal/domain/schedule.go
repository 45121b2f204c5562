package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DaysPerWeek is the number of schedulable days. Day indexes are Monday=0..Sunday=6.
const DaysPerWeek = 7

// ScheduleEntry assigns a template to one day of the week. Unique per (UserID, DayOfWeek).
type ScheduleEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	DayOfWeek  int                `bson:"dayOfWeek" json:"dayOfWeek"` // 0 (Mon) - 6 (Sun)
	TemplateID primitive.ObjectID `bson:"templateId" json:"templateId"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WeeklySchedule maps a normalized day index to its template. A missing day is a rest day.
type WeeklySchedule map[int]primitive.ObjectID

// NewWeeklySchedule builds a schedule from stored entries, ignoring out-of-range days.
func NewWeeklySchedule(entries []ScheduleEntry) WeeklySchedule {
	schedule := make(WeeklySchedule, len(entries))
	for _, entry := range entries {
		if !ValidDayOfWeek(entry.DayOfWeek) || entry.TemplateID.IsZero() {
			continue
		}
		schedule[entry.DayOfWeek] = entry.TemplateID
	}
	return schedule
}

// ValidDayOfWeek reports whether day is a normalized index in [0, 6].
func ValidDayOfWeek(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

// NormalizeWeekday converts Go's Sunday-based weekday to the stored Monday-based index.
func NormalizeWeekday(weekday time.Weekday) int {
	if weekday == time.Sunday {
		return 6
	}
	return int(weekday) - 1
}

// ResolveTemplateForDate returns the template scheduled for date's weekday.
// ok is false on rest days.
func ResolveTemplateForDate(date time.Time, schedule WeeklySchedule) (templateID primitive.ObjectID, ok bool) {
	templateID, ok = schedule[NormalizeWeekday(date.Weekday())]
	return templateID, ok
}
