package specialties

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendamed/scheduling-service/internal/api/handlers"
	specialtiesService "github.com/agendamed/scheduling-service/internal/service/specialties"
	"github.com/agendamed/scheduling-service/internal/service/specialties/models"
)

const (
	msgInvalidSpecialtyID = "ID de especialidade inválido"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgNotFound           = "especialidade não encontrada"
	msgAlreadyExists      = "especialidade já cadastrada"
)

type Handler struct {
	service SpecialtyService
	logger  Logger
}

func NewHandler(service SpecialtyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/specialties
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpecialtyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /specialties - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, specialtiesService.ErrSpecialtyAlreadyExists):
			h.logger.Warn("POST /specialties - Duplicate name: %s", req.Name)
			handlers.RespondConflict(w, msgAlreadyExists)
		case errors.Is(err, specialtiesService.ErrInvalidInput):
			h.logger.Warn("POST /specialties - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /specialties - Failed to create specialty: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /specialties - Specialty created: specialty_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/specialties
// Query: active (default lists every specialty)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if v := r.URL.Query().Get("active"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			activeOnly = parsed
		}
	}

	result, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /specialties - Failed to list specialties: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/specialties/{specialtyId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specialtyID, err := strconv.ParseInt(vars["specialtyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /specialties/{id} - Invalid specialty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialtyID)
		return
	}

	result, err := h.service.GetByID(r.Context(), specialtyID)
	if err != nil {
		switch {
		case errors.Is(err, specialtiesService.ErrSpecialtyNotFound):
			h.logger.Warn("GET /specialties/{id} - Specialty not found: specialty_id=%d", specialtyID)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /specialties/{id} - Failed to get specialty: specialty_id=%d, error=%v", specialtyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
