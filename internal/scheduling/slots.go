package scheduling

import (
	"sort"
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// Slot is a bookable interval of exactly one slot-interval length.
type Slot struct {
	Start           time.Time
	DurationMinutes int
}

// End returns the exclusive end of the slot.
func (s Slot) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// OpenSlots enumerates the free slots of one doctor inside [rangeStart,
// rangeEnd). Each active availability window on each day of the range is
// discretized into interval-sized slots from its start; slots overlapping an
// active appointment or violating the advance-booking bounds are dropped.
// The result is ordered by start time ascending and is deterministic for
// identical inputs.
func OpenSlots(
	cfg Config,
	windows []*domain.AvailabilityWindow,
	appointments []*domain.Appointment,
	rangeStart, rangeEnd time.Time,
	now time.Time,
) []Slot {
	slots := make([]Slot, 0)
	if !rangeStart.Before(rangeEnd) || cfg.SlotIntervalMinutes <= 0 {
		return slots
	}

	earliest := now.Add(time.Duration(cfg.MinAdvanceBookingHours) * time.Hour)
	latest := now.AddDate(0, 0, cfg.MaxAdvanceBookingDays)

	day := startOfDay(rangeStart)
	for day.Before(rangeEnd) {
		for _, w := range windows {
			if !w.Active || w.Weekday != day.Weekday() {
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

			for m := wStart; m+cfg.SlotIntervalMinutes <= wEnd; m += cfg.SlotIntervalMinutes {
				start := day.Add(time.Duration(m) * time.Minute)
				end := start.Add(time.Duration(cfg.SlotIntervalMinutes) * time.Minute)

				if start.Before(rangeStart) || !start.Before(rangeEnd) {
					continue
				}
				if start.Before(earliest) || start.After(latest) {
					continue
				}
				if overlapsAny(appointments, start, end, 0) {
					continue
				}

				slots = append(slots, Slot{Start: start, DurationMinutes: cfg.SlotIntervalMinutes})
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
