package appointments

import (
	"context"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// AppointmentRepository is the storage the service needs for appointments.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateNotes(ctx context.Context, id int64, notes *string) error
	Confirm(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// Logger is the logging surface the service uses.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
