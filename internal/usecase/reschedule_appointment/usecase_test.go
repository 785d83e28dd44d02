package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendamed/scheduling-service/internal/domain"
	appointmentRepo "github.com/agendamed/scheduling-service/internal/infra/storage/appointment"
	"github.com/agendamed/scheduling-service/internal/scheduling"
	"github.com/agendamed/scheduling-service/pkg/ptr"
	"github.com/agendamed/scheduling-service/pkg/types"
)

type mockAppointmentRepo struct {
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.Appointment, error)
	ListFunc       func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	RescheduleFunc func(ctx context.Context, id int64, newStart time.Time, durationMinutes int, notes *string) error
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockAppointmentRepo) Reschedule(ctx context.Context, id int64, newStart time.Time, durationMinutes int, notes *string) error {
	return m.RescheduleFunc(ctx, id, newStart, durationMinutes, notes)
}

type mockDoctorRepo struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Doctor, error)
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockAvailabilityRepo struct {
	ListByDoctorFunc func(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error)
}

func (m *mockAvailabilityRepo) ListByDoctor(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
	return m.ListByDoctorFunc(ctx, doctorID, activeOnly)
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockMetrics struct {
	outcomes []string
}

func (m *mockMetrics) ObserveBookingDecision(operation, outcome string) {
	m.outcomes = append(m.outcomes, operation+":"+outcome)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

var (
	_ AppointmentRepository  = (*mockAppointmentRepo)(nil)
	_ DoctorRepository       = (*mockDoctorRepo)(nil)
	_ AvailabilityRepository = (*mockAvailabilityRepo)(nil)
	_ TransactionManager     = (*mockTxManager)(nil)
	_ BookingMetrics         = (*mockMetrics)(nil)
)

var (
	nowDec18 = time.Date(2024, 12, 18, 9, 0, 0, 0, time.UTC)
	// 2024-12-20 is a Friday.
	dec20 = time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
)

func fridayWindow(t *testing.T) *domain.AvailabilityWindow {
	t.Helper()
	start, err := types.NewTimeStringFromString("09:00")
	require.NoError(t, err)
	end, err := types.NewTimeStringFromString("12:00")
	require.NoError(t, err)
	return &domain.AvailabilityWindow{DoctorID: 7, Weekday: time.Friday, StartTime: start, EndTime: end, Active: true}
}

func existingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              42,
		PatientID:       3,
		DoctorID:        7,
		StartsAt:        dec20.Add(10 * time.Hour),
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}
}

func newTestUseCase(apptRepo *mockAppointmentRepo, docRepo *mockDoctorRepo, availRepo *mockAvailabilityRepo, metrics *mockMetrics) *UseCase {
	uc := NewUseCase(apptRepo, docRepo, availRepo, &mockTxManager{},
		scheduling.Config{
			MinAdvanceBookingHours: 24,
			MaxAdvanceBookingDays:  90,
			DefaultDurationMinutes: 30,
			SlotIntervalMinutes:    30,
		}, metrics, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: nowDec18}
	return uc
}

func defaultMocks(t *testing.T) (*mockAppointmentRepo, *mockDoctorRepo, *mockAvailabilityRepo, *mockMetrics) {
	t.Helper()
	apptRepo := &mockAppointmentRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			return existingAppointment(), nil
		},
		ListFunc: func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
			return []*domain.Appointment{existingAppointment()}, nil
		},
		RescheduleFunc: func(ctx context.Context, id int64, newStart time.Time, durationMinutes int, notes *string) error {
			return nil
		},
	}
	docRepo := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Doctor, error) {
			return &domain.Doctor{ID: id, Name: "Dr. Souza", Active: true}, nil
		},
	}
	availRepo := &mockAvailabilityRepo{
		ListByDoctorFunc: func(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
			return []*domain.AvailabilityWindow{fridayWindow(t)}, nil
		},
	}
	return apptRepo, docRepo, availRepo, &mockMetrics{}
}

func TestRescheduleAppointment_DoesNotConflictWithItself(t *testing.T) {
	apptRepo, docRepo, availRepo, metrics := defaultMocks(t)

	// Moving 10:00 -> 10:15 overlaps the appointment's own old slot; the
	// self-exclusion must let it through.
	uc := newTestUseCase(apptRepo, docRepo, availRepo, metrics)
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewStartsAt:   dec20.Add(10*time.Hour + 15*time.Minute),
		Reason:        "patient asked to move",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRescheduled), resp.Status)
	assert.Equal(t, dec20.Add(10*time.Hour+15*time.Minute), resp.StartsAt)
	assert.Equal(t, []string{"reschedule:accepted"}, metrics.outcomes)
}

func TestRescheduleAppointment_AppendsAuditNote(t *testing.T) {
	apptRepo, docRepo, availRepo, metrics := defaultMocks(t)

	var savedNotes *string
	apptRepo.RescheduleFunc = func(ctx context.Context, id int64, newStart time.Time, durationMinutes int, notes *string) error {
		savedNotes = notes
		return nil
	}

	uc := newTestUseCase(apptRepo, docRepo, availRepo, metrics)
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewStartsAt:   dec20.Add(11 * time.Hour),
		Reason:        "doctor unavailable",
	})

	require.NoError(t, err)
	require.NotNil(t, savedNotes)
	assert.Contains(t, *savedNotes, "rescheduled from 2024-12-20T10:00:00Z")
	assert.Contains(t, *savedNotes, "doctor unavailable")
}

func TestRescheduleAppointment_AuditNotesAccumulate(t *testing.T) {
	apptRepo, docRepo, availRepo, metrics := defaultMocks(t)

	previous := existingAppointment()
	previous.Notes = ptr.Ptr("rescheduled from 2024-12-19T10:00:00Z: first move")
	apptRepo.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Appointment, error) {
		return previous, nil
	}

	var savedNotes *string
	apptRepo.RescheduleFunc = func(ctx context.Context, id int64, newStart time.Time, durationMinutes int, notes *string) error {
		savedNotes = notes
		return nil
	}

	uc := newTestUseCase(apptRepo, docRepo, availRepo, metrics)
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewStartsAt:   dec20.Add(11 * time.Hour),
		Reason:        "second move",
	})

	require.NoError(t, err)
	require.NotNil(t, savedNotes)
	assert.Contains(t, *savedNotes, "first move")
	assert.Contains(t, *savedNotes, "second move")
}

func TestRescheduleAppointment_CancelledCannotBeMoved(t *testing.T) {
	apptRepo, docRepo, availRepo, metrics := defaultMocks(t)
	apptRepo.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Appointment, error) {
		a := existingAppointment()
		a.Status = domain.StatusCancelled
		return a, nil
	}

	uc := newTestUseCase(apptRepo, docRepo, availRepo, metrics)
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewStartsAt:   dec20.Add(11 * time.Hour),
		Reason:        "patient asked to move",
	})

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, []string{"reschedule:already_cancelled"}, metrics.outcomes)
}

func TestRescheduleAppointment_ConflictWithAnotherAppointment(t *testing.T) {
	apptRepo, docRepo, availRepo, metrics := defaultMocks(t)
	apptRepo.ListFunc = func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		return []*domain.Appointment{
			existingAppointment(),
			{
				ID:              77,
				DoctorID:        7,
				StartsAt:        dec20.Add(11 * time.Hour),
				DurationMinutes: 30,
				Status:          domain.StatusConfirmed,
			},
		}, nil
	}

	uc := newTestUseCase(apptRepo, docRepo, availRepo, metrics)
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewStartsAt:   dec20.Add(11 * time.Hour),
		Reason:        "patient asked to move",
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestRescheduleAppointment_NotFound(t *testing.T) {
	apptRepo, docRepo, availRepo, metrics := defaultMocks(t)
	apptRepo.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Appointment, error) {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}

	uc := newTestUseCase(apptRepo, docRepo, availRepo, metrics)
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 999,
		NewStartsAt:   dec20.Add(11 * time.Hour),
		Reason:        "patient asked to move",
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRescheduleAppointment_RequestValidation(t *testing.T) {
	apptRepo, docRepo, availRepo, metrics := defaultMocks(t)
	uc := newTestUseCase(apptRepo, docRepo, availRepo, metrics)

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing id", &Request{NewStartsAt: dec20, Reason: "x"}},
		{"missing start", &Request{AppointmentID: 42, Reason: "x"}},
		{"missing reason", &Request{AppointmentID: 42, NewStartsAt: dec20}},
		{"blank reason", &Request{AppointmentID: 42, NewStartsAt: dec20, Reason: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
