package doctors

import (
	"context"

	"github.com/agendamed/scheduling-service/internal/domain"
	"github.com/agendamed/scheduling-service/internal/service/doctors/models"
)

type DoctorService interface {
	Create(ctx context.Context, req *models.CreateDoctorRequest) (*models.DoctorResponse, error)
	GetByID(ctx context.Context, id int64) (*models.DoctorResponse, error)
	List(ctx context.Context, filter domain.DoctorsFilter) (*models.DoctorListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateDoctorRequest) (*models.DoctorResponse, error)
	AddWindow(ctx context.Context, doctorID int64, req *models.CreateWindowRequest) (*models.WindowResponse, error)
	ListWindows(ctx context.Context, doctorID int64) (*models.WindowListResponse, error)
	DeactivateWindow(ctx context.Context, doctorID, windowID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
