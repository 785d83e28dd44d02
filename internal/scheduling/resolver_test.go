package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendamed/scheduling-service/internal/domain"
	"github.com/agendamed/scheduling-service/pkg/types"
)

func testConfig() Config {
	return Config{
		MinAdvanceBookingHours: 24,
		MaxAdvanceBookingDays:  90,
		DefaultDurationMinutes: 30,
		SlotIntervalMinutes:    30,
	}
}

func activeDoctor() *domain.Doctor {
	return &domain.Doctor{ID: 1, Name: "Dr. Souza", CRM: "12345-SP", SpecialtyID: 1, Active: true}
}

func window(t *testing.T, weekday time.Weekday, start, end string) *domain.AvailabilityWindow {
	t.Helper()
	s, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	e, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	return &domain.AvailabilityWindow{ID: 1, DoctorID: 1, Weekday: weekday, StartTime: s, EndTime: e, Active: true}
}

func appt(id int64, start time.Time, duration int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		PatientID:       1,
		DoctorID:        1,
		StartsAt:        start,
		DurationMinutes: duration,
		Status:          status,
	}
}

// 2024-12-20 is a Friday.
var (
	dec20 = time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	// "now" chosen two days earlier so the 09:00-12:00 window on the 20th is
	// inside the advance-booking bounds.
	nowDec18 = time.Date(2024, 12, 18, 9, 0, 0, 0, time.UTC)
)

func TestCheckAvailability_FridayWindowScenarios(t *testing.T) {
	cfg := testConfig()
	doctor := activeDoctor()
	windows := []*domain.AvailabilityWindow{window(t, time.Friday, "09:00", "12:00")}
	existing := []*domain.Appointment{
		appt(10, dec20.Add(10*time.Hour), 30, domain.StatusScheduled), // 10:00-10:30
	}

	tests := []struct {
		name    string
		start   time.Time
		wantErr error
	}{
		{"exact overlap rejected", dec20.Add(10 * time.Hour), ErrSlotConflict},
		{"partial overlap rejected", dec20.Add(10*time.Hour + 15*time.Minute), ErrSlotConflict},
		{"touching boundary accepted", dec20.Add(10*time.Hour + 30*time.Minute), nil},
		{"before window rejected", dec20.Add(8*time.Hour + 30*time.Minute), ErrNoAvailabilityWindow},
		{"ending past window rejected", dec20.Add(11*time.Hour + 45*time.Minute), ErrNoAvailabilityWindow},
		{"last slot of window accepted", dec20.Add(11*time.Hour + 30*time.Minute), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAvailability(cfg, doctor, windows, existing, tt.start, 30, nowDec18, 0)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckAvailability_AdvanceBounds(t *testing.T) {
	cfg := testConfig()
	doctor := activeDoctor()
	// Window on every weekday so only the bounds can reject.
	windows := make([]*domain.AvailabilityWindow, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		windows = append(windows, window(t, wd, "08:00", "22:00"))
	}

	now := time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC)

	// Same-day 20:00 violates the 24h minimum advance.
	err := CheckAvailability(cfg, doctor, windows, nil, time.Date(2024, 12, 20, 20, 0, 0, 0, time.UTC), 30, now, 0)
	assert.ErrorIs(t, err, ErrOutsideBookingWindow)

	// Two days out passes the bound check.
	err = CheckAvailability(cfg, doctor, windows, nil, time.Date(2024, 12, 22, 9, 0, 0, 0, time.UTC), 30, now, 0)
	assert.NoError(t, err)

	// Exactly at the minimum bound is allowed.
	err = CheckAvailability(cfg, doctor, windows, nil, time.Date(2024, 12, 21, 9, 0, 0, 0, time.UTC), 30, now, 0)
	assert.NoError(t, err)

	// Past the maximum advance of 90 days.
	err = CheckAvailability(cfg, doctor, windows, nil, now.AddDate(0, 0, 91), 30, now, 0)
	assert.ErrorIs(t, err, ErrOutsideBookingWindow)

	// A start in the past fails the minimum bound.
	err = CheckAvailability(cfg, doctor, windows, nil, now.Add(-time.Hour), 30, now, 0)
	assert.ErrorIs(t, err, ErrOutsideBookingWindow)
}

func TestCheckAvailability_InactiveDoctorWinsOverEverything(t *testing.T) {
	cfg := testConfig()
	doctor := activeDoctor()
	doctor.Active = false

	err := CheckAvailability(cfg, doctor, nil, nil, nowDec18.AddDate(0, 0, 2), 30, nowDec18, 0)
	assert.ErrorIs(t, err, ErrDoctorInactive)
}

func TestCheckAvailability_DurationValidation(t *testing.T) {
	cfg := testConfig()
	doctor := activeDoctor()
	windows := []*domain.AvailabilityWindow{window(t, time.Friday, "09:00", "12:00")}

	for _, d := range []int{0, -30, 45, 31} {
		err := CheckAvailability(cfg, doctor, windows, nil, dec20.Add(9*time.Hour), d, nowDec18, 0)
		assert.ErrorIs(t, err, ErrInvalidDuration, "duration %d", d)
	}

	// 60 minutes is a valid multiple and fits the window.
	err := CheckAvailability(cfg, doctor, windows, nil, dec20.Add(9*time.Hour), 60, nowDec18, 0)
	assert.NoError(t, err)
}

func TestCheckAvailability_CancelledAppointmentsDoNotConflict(t *testing.T) {
	cfg := testConfig()
	doctor := activeDoctor()
	windows := []*domain.AvailabilityWindow{window(t, time.Friday, "09:00", "12:00")}
	existing := []*domain.Appointment{
		appt(10, dec20.Add(10*time.Hour), 30, domain.StatusCancelled),
	}

	err := CheckAvailability(cfg, doctor, windows, existing, dec20.Add(10*time.Hour), 30, nowDec18, 0)
	assert.NoError(t, err)
}

func TestCheckAvailability_SelfExclusionForReschedule(t *testing.T) {
	cfg := testConfig()
	doctor := activeDoctor()
	windows := []*domain.AvailabilityWindow{window(t, time.Friday, "09:00", "12:00")}
	existing := []*domain.Appointment{
		appt(42, dec20.Add(10*time.Hour), 30, domain.StatusScheduled),
	}

	// Moving appointment 42 onto the slot it already occupies is allowed.
	err := CheckAvailability(cfg, doctor, windows, existing, dec20.Add(10*time.Hour), 30, nowDec18, 42)
	assert.NoError(t, err)

	// Another appointment on the same slot is still a conflict.
	err = CheckAvailability(cfg, doctor, windows, existing, dec20.Add(10*time.Hour), 30, nowDec18, 0)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCheckAvailability_InactiveWindowIgnored(t *testing.T) {
	cfg := testConfig()
	doctor := activeDoctor()
	w := window(t, time.Friday, "09:00", "12:00")
	w.Active = false

	err := CheckAvailability(cfg, doctor, []*domain.AvailabilityWindow{w}, nil, dec20.Add(10*time.Hour), 30, nowDec18, 0)
	assert.ErrorIs(t, err, ErrNoAvailabilityWindow)
}

func TestCheckAvailability_Deterministic(t *testing.T) {
	cfg := testConfig()
	doctor := activeDoctor()
	windows := []*domain.AvailabilityWindow{window(t, time.Friday, "09:00", "12:00")}
	existing := []*domain.Appointment{
		appt(10, dec20.Add(10*time.Hour), 30, domain.StatusConfirmed),
	}

	first := CheckAvailability(cfg, doctor, windows, existing, dec20.Add(10*time.Hour), 30, nowDec18, 0)
	for i := 0; i < 10; i++ {
		again := CheckAvailability(cfg, doctor, windows, existing, dec20.Add(10*time.Hour), 30, nowDec18, 0)
		assert.Equal(t, first, again)
	}
}
