package patients

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendamed/scheduling-service/internal/api/handlers"
	"github.com/agendamed/scheduling-service/internal/domain"
	patientsService "github.com/agendamed/scheduling-service/internal/service/patients"
	"github.com/agendamed/scheduling-service/internal/service/patients/models"
)

const (
	msgInvalidPatientID   = "ID de paciente inválido"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgNotFound           = "paciente não encontrado"
	msgAlreadyExists      = "telefone ou CPF já cadastrado"
)

type Handler struct {
	service PatientService
	logger  Logger
}

func NewHandler(service PatientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/patients
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePatientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /patients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, patientsService.ErrPatientAlreadyExists):
			h.logger.Warn("POST /patients - Duplicate phone or CPF")
			handlers.RespondConflict(w, msgAlreadyExists)
		case errors.Is(err, patientsService.ErrInvalidInput):
			h.logger.Warn("POST /patients - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /patients - Failed to create patient: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /patients - Patient created: patient_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/patients
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	result, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("GET /patients - Failed to list patients: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/patients/{patientId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	patientID, ok := h.patientID(w, r, "GET")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), patientID)
	if err != nil {
		switch {
		case errors.Is(err, patientsService.ErrPatientNotFound):
			h.logger.Warn("GET /patients/{id} - Patient not found: patient_id=%d", patientID)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /patients/{id} - Failed to get patient: patient_id=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/patients/{patientId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	patientID, ok := h.patientID(w, r, "PUT")
	if !ok {
		return
	}

	var req models.UpdatePatientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /patients/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, patientsService.ErrPatientNotFound):
			h.logger.Warn("PUT /patients/{id} - Patient not found: patient_id=%d", patientID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, patientsService.ErrPatientAlreadyExists):
			h.logger.Warn("PUT /patients/{id} - Duplicate phone or CPF: patient_id=%d", patientID)
			handlers.RespondConflict(w, msgAlreadyExists)
		case errors.Is(err, patientsService.ErrInvalidInput):
			h.logger.Warn("PUT /patients/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /patients/{id} - Failed to update patient: patient_id=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /patients/{id} - Patient updated: patient_id=%d", patientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/patients/{patientId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	patientID, ok := h.patientID(w, r, "DELETE")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), patientID); err != nil {
		switch {
		case errors.Is(err, patientsService.ErrPatientNotFound):
			h.logger.Warn("DELETE /patients/{id} - Patient not found: patient_id=%d", patientID)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("DELETE /patients/{id} - Failed to delete patient: patient_id=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /patients/{id} - Patient deleted: patient_id=%d", patientID)
	handlers.RespondNoContent(w)
}

func (h *Handler) patientID(w http.ResponseWriter, r *http.Request, method string) (int64, bool) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseInt(vars["patientId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s /patients/{id} - Invalid patient ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return 0, false
	}
	return patientID, true
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit = domain.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > domain.MaxListLimit {
		limit = domain.MaxListLimit
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
