package domain

import (
	"time"

	"github.com/agendamed/scheduling-service/pkg/types"
)

// AvailabilityWindow is a weekly recurring range during which a doctor takes
// appointments. Windows never cross midnight.
type AvailabilityWindow struct {
	ID        int64
	DoctorID  int64
	Weekday   time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	Active    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether the window covers [start, end) on its weekday.
// start and end are wall-clock times of the same day.
func (w *AvailabilityWindow) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}
