package patients

import (
	"context"

	"github.com/agendamed/scheduling-service/internal/service/patients/models"
)

type PatientService interface {
	Create(ctx context.Context, req *models.CreatePatientRequest) (*models.PatientResponse, error)
	GetByID(ctx context.Context, id int64) (*models.PatientResponse, error)
	List(ctx context.Context, limit, offset int) (*models.PatientListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdatePatientRequest) (*models.PatientResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
