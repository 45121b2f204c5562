package service

import (
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
)

// Clock returns the current instant. Tests inject a fixed one.
type Clock func() time.Time

// calendar turns a Clock into calendar days of a fixed timezone.
type calendar struct {
	now Clock
	loc *time.Location
}

func newCalendar(clock Clock, loc *time.Location) calendar {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return calendar{now: clock, loc: loc}
}

// today is the current instant seen in the configured zone.
func (c calendar) today() time.Time {
	return c.now().In(c.loc)
}

func (c calendar) todayString() string {
	return domain.FormatDate(c.today())
}
