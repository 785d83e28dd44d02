package get_open_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agendamed/scheduling-service/internal/api/handlers"
	getOpenSlots "github.com/agendamed/scheduling-service/internal/usecase/get_open_slots"
	"github.com/agendamed/scheduling-service/pkg/ptr"
)

const (
	msgInvalidQuery   = "parâmetros de consulta inválidos"
	msgDoctorNotFound = "médico não encontrado"
)

type Handler struct {
	useCase GetOpenSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetOpenSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots
// Query: doctor_id, specialty_id, from, to
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getOpenSlots.ErrDoctorNotFound):
			h.logger.Warn("GET /availability/slots - Doctor not found")
			handlers.RespondNotFound(w, msgDoctorNotFound)
		case errors.Is(err, getOpenSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /availability/slots - Failed to compute slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func parseQuery(r *http.Request) (*getOpenSlots.Request, error) {
	q := r.URL.Query()
	req := &getOpenSlots.Request{}

	if v := q.Get("doctor_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.DoctorID = ptr.Ptr(id)
	}
	if v := q.Get("specialty_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.SpecialtyID = ptr.Ptr(id)
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		req.From = ptr.Ptr(t)
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		req.To = ptr.Ptr(t)
	}
	return req, nil
}
