package specialties

import (
	"context"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// SpecialtyRepository is the storage the service needs for specialties.
type SpecialtyRepository interface {
	Create(ctx context.Context, s *domain.Specialty) (*domain.Specialty, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialty, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Specialty, error)
}

// Logger is the logging surface the service uses.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
