package health

import (
	"context"
	"net/http"
	"time"

	"github.com/agendamed/scheduling-service/internal/api/handlers"
)

// Pinger is the database health probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Error(format string, v ...interface{})
}

type statusResponse struct {
	Status string `json:"status"`
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// Live GET /health
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// Ready GET /health/ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /health/ready - Database ping failed: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
