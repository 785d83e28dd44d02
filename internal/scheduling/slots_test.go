package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendamed/scheduling-service/internal/domain"
)

func TestOpenSlots_SubtractsBusyIntervals(t *testing.T) {
	cfg := testConfig()
	windows := []*domain.AvailabilityWindow{window(t, time.Friday, "09:00", "12:00")}
	busy := []*domain.Appointment{
		appt(1, dec20.Add(10*time.Hour), 30, domain.StatusScheduled), // 10:00-10:30
	}

	slots := OpenSlots(cfg, windows, busy, dec20, dec20.AddDate(0, 0, 1), nowDec18)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start.Format("15:04"))
	}
	// 09:00-12:00 in 30 minute steps minus the 10:00 booking.
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, starts)

	for _, s := range slots {
		assert.Equal(t, cfg.SlotIntervalMinutes, s.DurationMinutes)
	}
}

func TestOpenSlots_NeverReturnsConflictingOrOutOfBoundsSlots(t *testing.T) {
	cfg := testConfig()
	windows := []*domain.AvailabilityWindow{
		window(t, time.Friday, "09:00", "12:00"),
		window(t, time.Monday, "14:00", "18:00"),
	}
	busy := []*domain.Appointment{
		appt(1, dec20.Add(9*time.Hour+30*time.Minute), 60, domain.StatusConfirmed),
		appt(2, dec20.Add(11*time.Hour), 30, domain.StatusRescheduled),
		appt(3, dec20.Add(10*time.Hour+30*time.Minute), 30, domain.StatusCancelled),
	}

	rangeStart := nowDec18
	rangeEnd := nowDec18.AddDate(0, 0, 120)
	slots := OpenSlots(cfg, windows, busy, rangeStart, rangeEnd, nowDec18)
	require.NotEmpty(t, slots)

	earliest := nowDec18.Add(24 * time.Hour)
	latest := nowDec18.AddDate(0, 0, 90)

	for _, s := range slots {
		assert.False(t, s.Start.Before(earliest), "slot %s violates minimum advance", s.Start)
		assert.False(t, s.Start.After(latest), "slot %s violates maximum advance", s.Start)

		for _, b := range busy {
			if !b.IsActive() {
				continue
			}
			overlap := b.StartsAt.Before(s.End()) && s.Start.Before(b.EndsAt())
			assert.False(t, overlap, "slot %s overlaps appointment %d", s.Start, b.ID)
		}
	}
}

func TestOpenSlots_OrderedAscendingAndDeterministic(t *testing.T) {
	cfg := testConfig()
	windows := []*domain.AvailabilityWindow{
		window(t, time.Saturday, "08:00", "10:00"),
		window(t, time.Friday, "09:00", "11:00"),
	}

	first := OpenSlots(cfg, windows, nil, dec20, dec20.AddDate(0, 0, 3), nowDec18)
	require.NotEmpty(t, first)

	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].Start.Before(first[i].Start) || first[i-1].Start.Equal(first[i].Start))
	}

	second := OpenSlots(cfg, windows, nil, dec20, dec20.AddDate(0, 0, 3), nowDec18)
	assert.Equal(t, first, second)
}

func TestOpenSlots_RespectsRangeBounds(t *testing.T) {
	cfg := testConfig()
	windows := []*domain.AvailabilityWindow{window(t, time.Friday, "09:00", "12:00")}

	// Range starting mid-window drops the earlier slots.
	rangeStart := dec20.Add(10 * time.Hour)
	slots := OpenSlots(cfg, windows, nil, rangeStart, dec20.AddDate(0, 0, 1), nowDec18)

	for _, s := range slots {
		assert.False(t, s.Start.Before(rangeStart))
	}
	require.Len(t, slots, 4) // 10:00, 10:30, 11:00, 11:30

	// Empty or inverted ranges produce no slots.
	assert.Empty(t, OpenSlots(cfg, windows, nil, dec20, dec20, nowDec18))
	assert.Empty(t, OpenSlots(cfg, windows, nil, dec20.AddDate(0, 0, 1), dec20, nowDec18))
}

func TestOpenSlots_SlotMustFitInsideWindow(t *testing.T) {
	cfg := testConfig()
	// 100 minute window holds three full 30 minute slots; the 10 minute tail
	// is not bookable.
	windows := []*domain.AvailabilityWindow{window(t, time.Friday, "09:00", "10:40")}

	slots := OpenSlots(cfg, windows, nil, dec20, dec20.AddDate(0, 0, 1), nowDec18)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start.Format("15:04"))
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, starts)
}
