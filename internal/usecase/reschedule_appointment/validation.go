package reschedule_appointment

import (
	"fmt"
	"strings"

	"github.com/agendamed/scheduling-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}
	if req.NewStartsAt.IsZero() {
		return fmt.Errorf("%w: newStartsAt is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	if req.DurationMinutes != nil {
		d := *req.DurationMinutes
		if d < domain.MinDurationMinutes || d > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}
	return nil
}
