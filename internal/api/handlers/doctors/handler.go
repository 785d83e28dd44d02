package doctors

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendamed/scheduling-service/internal/api/handlers"
	"github.com/agendamed/scheduling-service/internal/domain"
	doctorsService "github.com/agendamed/scheduling-service/internal/service/doctors"
	"github.com/agendamed/scheduling-service/internal/service/doctors/models"
	"github.com/agendamed/scheduling-service/pkg/ptr"
)

const (
	msgInvalidDoctorID    = "ID de médico inválido"
	msgInvalidWindowID    = "ID de horário inválido"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidQuery       = "parâmetros de consulta inválidos"
	msgNotFound           = "médico não encontrado"
	msgSpecialtyNotFound  = "especialidade não encontrada"
	msgAlreadyExists      = "CRM já cadastrado"
	msgWindowNotFound     = "horário de atendimento não encontrado"
)

type Handler struct {
	service DoctorService
	logger  Logger
}

func NewHandler(service DoctorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/doctors
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDoctorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctors - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, doctorsService.ErrSpecialtyNotFound):
			h.logger.Warn("POST /doctors - Specialty not found: specialty_id=%d", req.SpecialtyID)
			handlers.RespondNotFound(w, msgSpecialtyNotFound)
		case errors.Is(err, doctorsService.ErrDoctorAlreadyExists):
			h.logger.Warn("POST /doctors - Duplicate CRM: crm=%s", req.CRM)
			handlers.RespondConflict(w, msgAlreadyExists)
		case errors.Is(err, doctorsService.ErrInvalidInput):
			h.logger.Warn("POST /doctors - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /doctors - Failed to create doctor: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors - Doctor created: doctor_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/doctors
// Query: specialty_id, active, limit, offset
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListQuery(r)
	if err != nil {
		h.logger.Warn("GET /doctors - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /doctors - Failed to list doctors: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/doctors/{doctorId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := h.doctorID(w, r, "GET")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), doctorID)
	if err != nil {
		switch {
		case errors.Is(err, doctorsService.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{id} - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /doctors/{id} - Failed to get doctor: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/doctors/{doctorId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := h.doctorID(w, r, "PUT")
	if !ok {
		return
	}

	var req models.UpdateDoctorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctors/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, doctorsService.ErrDoctorNotFound):
			h.logger.Warn("PUT /doctors/{id} - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, doctorsService.ErrSpecialtyNotFound):
			h.logger.Warn("PUT /doctors/{id} - Specialty not found: specialty_id=%d", req.SpecialtyID)
			handlers.RespondNotFound(w, msgSpecialtyNotFound)
		case errors.Is(err, doctorsService.ErrDoctorAlreadyExists):
			h.logger.Warn("PUT /doctors/{id} - Duplicate CRM: crm=%s", req.CRM)
			handlers.RespondConflict(w, msgAlreadyExists)
		case errors.Is(err, doctorsService.ErrInvalidInput):
			h.logger.Warn("PUT /doctors/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /doctors/{id} - Failed to update doctor: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /doctors/{id} - Doctor updated: doctor_id=%d", doctorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// AddWindow POST /api/v1/doctors/{doctorId}/availability
func (h *Handler) AddWindow(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := h.doctorID(w, r, "POST")
	if !ok {
		return
	}

	var req models.CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddWindow(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, doctorsService.ErrDoctorNotFound):
			h.logger.Warn("POST /doctors/{id}/availability - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, doctorsService.ErrInvalidInput):
			h.logger.Warn("POST /doctors/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /doctors/{id}/availability - Failed to add window: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors/{id}/availability - Window added: doctor_id=%d, window_id=%d", doctorID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// ListWindows GET /api/v1/doctors/{doctorId}/availability
func (h *Handler) ListWindows(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := h.doctorID(w, r, "GET")
	if !ok {
		return
	}

	result, err := h.service.ListWindows(r.Context(), doctorID)
	if err != nil {
		switch {
		case errors.Is(err, doctorsService.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{id}/availability - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /doctors/{id}/availability - Failed to list windows: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeactivateWindow DELETE /api/v1/doctors/{doctorId}/availability/{windowId}
func (h *Handler) DeactivateWindow(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := h.doctorID(w, r, "DELETE")
	if !ok {
		return
	}

	vars := mux.Vars(r)
	windowID, err := strconv.ParseInt(vars["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /doctors/{id}/availability/{windowId} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	if err := h.service.DeactivateWindow(r.Context(), doctorID, windowID); err != nil {
		switch {
		case errors.Is(err, doctorsService.ErrDoctorNotFound):
			h.logger.Warn("DELETE /doctors/{id}/availability/{windowId} - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, doctorsService.ErrWindowNotFound):
			h.logger.Warn("DELETE /doctors/{id}/availability/{windowId} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgWindowNotFound)
		default:
			h.logger.Error("DELETE /doctors/{id}/availability/{windowId} - Failed to deactivate window: window_id=%d, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /doctors/{id}/availability/{windowId} - Window deactivated: doctor_id=%d, window_id=%d", doctorID, windowID)
	handlers.RespondNoContent(w)
}

func (h *Handler) doctorID(w http.ResponseWriter, r *http.Request, method string) (int64, bool) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s /doctors/{id} - Invalid doctor ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return 0, false
	}
	return doctorID, true
}

func parseListQuery(r *http.Request) (domain.DoctorsFilter, error) {
	q := r.URL.Query()
	filter := domain.DoctorsFilter{Limit: domain.DefaultListLimit}

	if v := q.Get("specialty_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.SpecialtyID = ptr.Ptr(id)
	}
	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return filter, err
		}
		filter.Active = ptr.Ptr(active)
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		if n > 0 {
			filter.Limit = n
		}
	}
	if filter.Limit > domain.MaxListLimit {
		filter.Limit = domain.MaxListLimit
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		if n > 0 {
			filter.Offset = n
		}
	}
	return filter, nil
}
