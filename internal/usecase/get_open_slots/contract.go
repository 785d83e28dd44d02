package get_open_slots

import (
	"context"
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// AppointmentRepository lists the busy intervals per doctor.
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// DoctorRepository resolves the doctors to search.
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	List(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error)
}

// AvailabilityRepository lists the doctors' weekly windows.
type AvailabilityRepository interface {
	ListByDoctor(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error)
}

// TransactionManager gives the search one consistent read snapshot.
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
