package get_open_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendamed/scheduling-service/internal/domain"
	doctorRepo "github.com/agendamed/scheduling-service/internal/infra/storage/doctor"
	"github.com/agendamed/scheduling-service/internal/scheduling"
	"github.com/agendamed/scheduling-service/pkg/ptr"
	"github.com/agendamed/scheduling-service/pkg/types"
)

type mockAppointmentRepo struct {
	ListFunc func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return m.ListFunc(ctx, filter)
}

type mockDoctorRepo struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Doctor, error)
	ListFunc    func(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error)
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockDoctorRepo) List(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error) {
	return m.ListFunc(ctx, filter)
}

type mockAvailabilityRepo struct {
	ListByDoctorFunc func(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error)
}

func (m *mockAvailabilityRepo) ListByDoctor(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
	return m.ListByDoctorFunc(ctx, doctorID, activeOnly)
}

type mockTxManager struct{}

func (m *mockTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
)

var (
	nowDec18 = time.Date(2024, 12, 18, 9, 0, 0, 0, time.UTC)
	// 2024-12-20 is a Friday.
	dec20 = time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
)

func fridayWindow(t *testing.T, doctorID int64) *domain.AvailabilityWindow {
	t.Helper()
	start, err := types.NewTimeStringFromString("09:00")
	require.NoError(t, err)
	end, err := types.NewTimeStringFromString("11:00")
	require.NoError(t, err)
	return &domain.AvailabilityWindow{DoctorID: doctorID, Weekday: time.Friday, StartTime: start, EndTime: end, Active: true}
}

func newTestUseCase(apptRepo *mockAppointmentRepo, docRepo *mockDoctorRepo, availRepo *mockAvailabilityRepo) *UseCase {
	uc := NewUseCase(apptRepo, docRepo, availRepo, &mockTxManager{},
		scheduling.Config{
			MinAdvanceBookingHours: 24,
			MaxAdvanceBookingDays:  90,
			DefaultDurationMinutes: 30,
			SlotIntervalMinutes:    30,
		}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: nowDec18}
	return uc
}

func TestGetOpenSlots_SingleDoctor(t *testing.T) {
	apptRepo := &mockAppointmentRepo{
		ListFunc: func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
			return []*domain.Appointment{{
				ID:              1,
				DoctorID:        7,
				StartsAt:        dec20.Add(9*time.Hour + 30*time.Minute),
				DurationMinutes: 30,
				Status:          domain.StatusScheduled,
			}}, nil
		},
	}
	docRepo := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Doctor, error) {
			return &domain.Doctor{ID: id, Name: "Dr. Souza", Active: true}, nil
		},
	}
	availRepo := &mockAvailabilityRepo{
		ListByDoctorFunc: func(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
			return []*domain.AvailabilityWindow{fridayWindow(t, doctorID)}, nil
		},
	}

	uc := newTestUseCase(apptRepo, docRepo, availRepo)
	resp, err := uc.Execute(context.Background(), &Request{
		DoctorID: ptr.Ptr(int64(7)),
		From:     ptr.Ptr(dec20),
		To:       ptr.Ptr(dec20.AddDate(0, 0, 1)),
	})

	require.NoError(t, err)
	require.Len(t, resp.Doctors, 1)
	assert.Equal(t, "Dr. Souza", resp.Doctors[0].DoctorName)

	starts := make([]string, 0, len(resp.Doctors[0].Slots))
	for _, s := range resp.Doctors[0].Slots {
		starts = append(starts, s.Start.Format("15:04"))
	}
	// 09:00-11:00 window minus the 09:30 booking.
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, starts)
}

func TestGetOpenSlots_SpecialtyWideSearch(t *testing.T) {
	apptRepo := &mockAppointmentRepo{
		ListFunc: func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
			return nil, nil
		},
	}
	docRepo := &mockDoctorRepo{
		ListFunc: func(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error) {
			require.NotNil(t, filter.SpecialtyID)
			assert.Equal(t, int64(2), *filter.SpecialtyID)
			return []*domain.Doctor{
				{ID: 7, Name: "Dr. Souza", Active: true},
				{ID: 8, Name: "Dra. Lima", Active: true},
			}, nil
		},
	}
	availRepo := &mockAvailabilityRepo{
		ListByDoctorFunc: func(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
			if doctorID == 8 {
				return nil, nil
			}
			return []*domain.AvailabilityWindow{fridayWindow(t, doctorID)}, nil
		},
	}

	uc := newTestUseCase(apptRepo, docRepo, availRepo)
	resp, err := uc.Execute(context.Background(), &Request{
		SpecialtyID: ptr.Ptr(int64(2)),
		From:        ptr.Ptr(dec20),
		To:          ptr.Ptr(dec20.AddDate(0, 0, 1)),
	})

	require.NoError(t, err)
	require.Len(t, resp.Doctors, 2)
	assert.NotEmpty(t, resp.Doctors[0].Slots)
	assert.Empty(t, resp.Doctors[1].Slots, "doctor without windows has no slots")
}

func TestGetOpenSlots_DefaultsRangeFromNow(t *testing.T) {
	apptRepo := &mockAppointmentRepo{
		ListFunc: func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
			return nil, nil
		},
	}
	docRepo := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Doctor, error) {
			return &domain.Doctor{ID: id, Name: "Dr. Souza", Active: true}, nil
		},
	}
	availRepo := &mockAvailabilityRepo{
		ListByDoctorFunc: func(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
			return []*domain.AvailabilityWindow{fridayWindow(t, doctorID)}, nil
		},
	}

	uc := newTestUseCase(apptRepo, docRepo, availRepo)
	resp, err := uc.Execute(context.Background(), &Request{DoctorID: ptr.Ptr(int64(7))})

	require.NoError(t, err)
	assert.Equal(t, nowDec18, resp.From)
	assert.Equal(t, nowDec18.AddDate(0, 0, DefaultSearchDays), resp.To)
	require.Len(t, resp.Doctors, 1)
	assert.NotEmpty(t, resp.Doctors[0].Slots)
}

func TestGetOpenSlots_DoctorNotFound(t *testing.T) {
	apptRepo := &mockAppointmentRepo{}
	docRepo := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Doctor, error) {
			return nil, doctorRepo.ErrDoctorNotFound
		},
	}
	availRepo := &mockAvailabilityRepo{}

	uc := newTestUseCase(apptRepo, docRepo, availRepo)
	_, err := uc.Execute(context.Background(), &Request{DoctorID: ptr.Ptr(int64(999))})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGetOpenSlots_RequestValidation(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockDoctorRepo{}, &mockAvailabilityRepo{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		DoctorID:    ptr.Ptr(int64(7)),
		SpecialtyID: ptr.Ptr(int64(2)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
