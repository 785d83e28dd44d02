package chatbot

import (
	"context"

	"github.com/agendamed/scheduling-service/internal/domain"
	doctorModels "github.com/agendamed/scheduling-service/internal/service/doctors/models"
	patientModels "github.com/agendamed/scheduling-service/internal/service/patients/models"
	specialtyModels "github.com/agendamed/scheduling-service/internal/service/specialties/models"
	createAppointment "github.com/agendamed/scheduling-service/internal/usecase/create_appointment"
	getOpenSlots "github.com/agendamed/scheduling-service/internal/usecase/get_open_slots"
)

type SpecialtyService interface {
	List(ctx context.Context, activeOnly bool) (*specialtyModels.SpecialtyListResponse, error)
}

type DoctorService interface {
	List(ctx context.Context, filter domain.DoctorsFilter) (*doctorModels.DoctorListResponse, error)
}

type PatientService interface {
	GetByPhone(ctx context.Context, phone string) (*patientModels.PatientResponse, error)
}

type GetOpenSlotsUseCase interface {
	Execute(ctx context.Context, req *getOpenSlots.Request) (*getOpenSlots.Response, error)
}

type CreateAppointmentUseCase interface {
	Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
