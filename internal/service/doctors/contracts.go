package doctors

import (
	"context"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// DoctorRepository is the storage the service needs for doctors.
type DoctorRepository interface {
	Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	List(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error)
	Update(ctx context.Context, d *domain.Doctor) error
}

// SpecialtyRepository resolves the specialty a doctor is registered under.
type SpecialtyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Specialty, error)
}

// AvailabilityRepository is the storage for weekly availability windows.
type AvailabilityRepository interface {
	Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	ListByDoctor(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error)
	Deactivate(ctx context.Context, doctorID, windowID int64) error
}

// Logger is the logging surface the service uses.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
