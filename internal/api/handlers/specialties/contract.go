package specialties

import (
	"context"

	"github.com/agendamed/scheduling-service/internal/service/specialties/models"
)

type SpecialtyService interface {
	Create(ctx context.Context, req *models.CreateSpecialtyRequest) (*models.SpecialtyResponse, error)
	GetByID(ctx context.Context, id int64) (*models.SpecialtyResponse, error)
	List(ctx context.Context, activeOnly bool) (*models.SpecialtyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
