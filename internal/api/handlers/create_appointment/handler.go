package create_appointment

import (
	"errors"
	"net/http"

	"github.com/agendamed/scheduling-service/internal/api/handlers"
	createAppointment "github.com/agendamed/scheduling-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody   = "corpo da requisição inválido"
	msgInvalidStartsAt      = "formato de data/hora inválido, esperado RFC 3339"
	msgPatientNotFound      = "paciente não encontrado"
	msgDoctorNotFound       = "médico não encontrado"
	msgDoctorInactive       = "médico não está atendendo no momento"
	msgOutsideBookingWindow = "horário fora do período permitido para agendamento"
	msgNoAvailability       = "médico não atende neste horário"
	msgSlotConflict         = "horário já ocupado"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse startsAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: doctor_id=%d, starts_at=%s", req.DoctorID, req.StartsAt)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrPatientNotFound):
			h.logger.Warn("POST /appointments - Patient not found: patient_id=%d", req.PatientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, createAppointment.ErrDoctorNotFound):
			h.logger.Warn("POST /appointments - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createAppointment.ErrDoctorInactive):
			h.logger.Warn("POST /appointments - Doctor inactive: doctor_id=%d", req.DoctorID)
			handlers.RespondUnprocessable(w, msgDoctorInactive)

		case errors.Is(err, createAppointment.ErrOutsideBookingWindow):
			h.logger.Warn("POST /appointments - Outside booking window: doctor_id=%d, starts_at=%s", req.DoctorID, req.StartsAt)
			handlers.RespondUnprocessable(w, msgOutsideBookingWindow)

		case errors.Is(err, createAppointment.ErrNoAvailabilityWindow):
			h.logger.Warn("POST /appointments - No availability window: doctor_id=%d, starts_at=%s", req.DoctorID, req.StartsAt)
			handlers.RespondUnprocessable(w, msgNoAvailability)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: doctor_id=%d, error=%v", req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, doctor_id=%d", result.ID, req.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
