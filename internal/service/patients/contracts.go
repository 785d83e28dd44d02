package patients

import (
	"context"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// PatientRepository is the storage the service needs for patients.
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Patient, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Patient, error)
	Update(ctx context.Context, p *domain.Patient) error
	Delete(ctx context.Context, id int64) error
}

// Logger is the logging surface the service uses.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
