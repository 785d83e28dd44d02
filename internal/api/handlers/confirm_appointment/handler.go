package confirm_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendamed/scheduling-service/internal/api/handlers"
	"github.com/agendamed/scheduling-service/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "ID de agendamento inválido"
	msgNotFound             = "agendamento não encontrado"
	msgInvalidState         = "agendamento não pode ser confirmado neste estado"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.service.Confirm(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/confirm - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, appointments.ErrInvalidStateForConfirm):
			h.logger.Warn("POST /appointments/{id}/confirm - Invalid state: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgInvalidState)
		default:
			h.logger.Error("POST /appointments/{id}/confirm - Failed to confirm appointment: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/confirm - Appointment confirmed: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
