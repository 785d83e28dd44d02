package reschedule_appointment

import (
	"context"
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// AppointmentRepository is the appointment storage the usecase needs.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Reschedule(ctx context.Context, id int64, newStart time.Time, durationMinutes int, notes *string) error
}

// DoctorRepository resolves the appointment's doctor.
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// AvailabilityRepository lists the doctor's weekly windows.
type AvailabilityRepository interface {
	ListByDoctor(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error)
}

// TransactionManager runs the conflict check and the update atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookingMetrics counts booking decisions by outcome.
type BookingMetrics interface {
	ObserveBookingDecision(operation, outcome string)
}

// TimeProvider abstracts the clock so tests can pin "now".
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the usecase uses.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
