// Package scheduling implements the availability and conflict resolver as
// pure functions over domain data. Persistence and transactional guarantees
// are layered on top by the booking usecases; everything here is
// deterministic given its inputs, including the caller-supplied "now".
package scheduling

import (
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// Config carries the booking rules the resolver applies. It is passed
// explicitly so tests can vary the bounds freely.
type Config struct {
	MinAdvanceBookingHours int
	MaxAdvanceBookingDays  int
	DefaultDurationMinutes int
	SlotIntervalMinutes    int
}

// ValidDuration reports whether d is a positive multiple of the slot interval.
func (c Config) ValidDuration(d int) bool {
	return d > 0 && c.SlotIntervalMinutes > 0 && d%c.SlotIntervalMinutes == 0
}

// CheckAvailability decides whether a doctor can take an appointment starting
// at start with the given duration. Checks run in a fixed order so the caller
// always gets the most fundamental reject reason:
//
//  1. doctor must be active
//  2. start must respect the advance-booking bounds relative to now
//  3. an active availability window must fully contain the interval
//  4. no active appointment may overlap the interval
//
// excludeID removes one appointment from the conflict set, which is how a
// reschedule avoids colliding with itself. Pass 0 to exclude nothing.
func CheckAvailability(
	cfg Config,
	doctor *domain.Doctor,
	windows []*domain.AvailabilityWindow,
	appointments []*domain.Appointment,
	start time.Time,
	durationMinutes int,
	now time.Time,
	excludeID int64,
) error {
	if !doctor.Active {
		return ErrDoctorInactive
	}

	if !cfg.ValidDuration(durationMinutes) {
		return ErrInvalidDuration
	}

	if err := checkAdvanceBounds(cfg, start, now); err != nil {
		return err
	}

	if !windowCovers(windows, start, durationMinutes) {
		return ErrNoAvailabilityWindow
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	if overlapsAny(appointments, start, end, excludeID) {
		return ErrSlotConflict
	}

	return nil
}

// checkAdvanceBounds enforces now+minHours <= start <= now+maxDays. A start
// in the past fails the minimum bound by construction.
func checkAdvanceBounds(cfg Config, start, now time.Time) error {
	earliest := now.Add(time.Duration(cfg.MinAdvanceBookingHours) * time.Hour)
	if start.Before(earliest) {
		return ErrOutsideBookingWindow
	}

	latest := now.AddDate(0, 0, cfg.MaxAdvanceBookingDays)
	if start.After(latest) {
		return ErrOutsideBookingWindow
	}

	return nil
}

// windowCovers reports whether some active window on start's weekday fully
// contains [start, start+duration). Intervals that would cross midnight are
// never covered because windows do not wrap.
func windowCovers(windows []*domain.AvailabilityWindow, start time.Time, durationMinutes int) bool {
	startMin := start.Hour()*60 + start.Minute()
	endMin := startMin + durationMinutes
	if endMin > 24*60 {
		return false
	}

	for _, w := range windows {
		if !w.Active || w.Weekday != start.Weekday() {
			continue
		}

		wStart, err := w.StartTime.Minutes()
		if err != nil {
			continue
		}
		wEnd, err := w.EndTime.Minutes()
		if err != nil {
			continue
		}

		if startMin >= wStart && endMin <= wEnd {
			return true
		}
	}

	return false
}

// overlapsAny reports whether [start, end) intersects any active appointment
// other than excludeID. Half-open intervals: touching boundaries do not
// conflict.
func overlapsAny(appointments []*domain.Appointment, start, end time.Time, excludeID int64) bool {
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		if a.StartsAt.Before(end) && start.Before(a.EndsAt()) {
			return true
		}
	}
	return false
}
