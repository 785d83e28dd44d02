package create_appointment

import (
	"context"
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// AppointmentRepository is the appointment storage the usecase needs.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// DoctorRepository resolves the doctor being booked.
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// PatientRepository resolves the patient booking the appointment.
type PatientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
}

// AvailabilityRepository lists the doctor's weekly windows.
type AvailabilityRepository interface {
	ListByDoctor(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error)
}

// TransactionManager runs the conflict check and the insert atomically.
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
