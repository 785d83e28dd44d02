package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendamed/scheduling-service/internal/api/handlers"
	rescheduleAppointment "github.com/agendamed/scheduling-service/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "ID de agendamento inválido"
	msgInvalidRequestBody   = "corpo da requisição inválido"
	msgInvalidStartsAt      = "formato de data/hora inválido, esperado RFC 3339"
	msgNotFound             = "agendamento não encontrado"
	msgAlreadyCancelled     = "agendamento cancelado não pode ser remarcado"
	msgDoctorInactive       = "médico não está atendendo no momento"
	msgOutsideBookingWindow = "horário fora do período permitido para agendamento"
	msgNoAvailability       = "médico não atende neste horário"
	msgSlotConflict         = "horário já ocupado"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/reschedule - Failed to parse newStartsAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrAlreadyCancelled):
			h.logger.Warn("POST /appointments/{id}/reschedule - Already cancelled: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, rescheduleAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments/{id}/reschedule - Slot conflict: appointment_id=%d, new_starts_at=%s", appointmentID, req.NewStartsAt)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleAppointment.ErrDoctorInactive):
			h.logger.Warn("POST /appointments/{id}/reschedule - Doctor inactive: appointment_id=%d", appointmentID)
			handlers.RespondUnprocessable(w, msgDoctorInactive)

		case errors.Is(err, rescheduleAppointment.ErrOutsideBookingWindow):
			h.logger.Warn("POST /appointments/{id}/reschedule - Outside booking window: appointment_id=%d, new_starts_at=%s", appointmentID, req.NewStartsAt)
			handlers.RespondUnprocessable(w, msgOutsideBookingWindow)

		case errors.Is(err, rescheduleAppointment.ErrNoAvailabilityWindow):
			h.logger.Warn("POST /appointments/{id}/reschedule - No availability window: appointment_id=%d, new_starts_at=%s", appointmentID, req.NewStartsAt)
			handlers.RespondUnprocessable(w, msgNoAvailability)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/reschedule - Appointment rescheduled: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
