package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusRescheduled, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusConfirmed, StatusRescheduled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusRescheduled, StatusConfirmed, true},
		{StatusRescheduled, StatusRescheduled, true},
		{StatusRescheduled, StatusCancelled, true},
		// cancelled is terminal
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusRescheduled, false},
		{StatusCancelled, StatusCancelled, false},
		// nothing goes back to scheduled
		{StatusConfirmed, StatusScheduled, false},
		{StatusRescheduled, StatusScheduled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestAppointmentStatusIsValid(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusRescheduled, StatusCancelled} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, AppointmentStatus("completed").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestAppointmentIntervalHelpers(t *testing.T) {
	start := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	a := &Appointment{StartsAt: start, DurationMinutes: 45, Status: StatusScheduled}

	assert.Equal(t, start.Add(45*time.Minute), a.EndsAt())
	assert.True(t, a.IsActive())
	assert.False(t, a.IsCancelled())

	a.Status = StatusCancelled
	assert.False(t, a.IsActive())
	assert.True(t, a.IsCancelled())
	assert.False(t, a.CanBeConfirmed())
	assert.False(t, a.CanBeRescheduled())
}
