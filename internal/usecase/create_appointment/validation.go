package create_appointment

import (
	"fmt"

	"github.com/agendamed/scheduling-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientId is required", ErrInvalidInput)
	}
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorId is required", ErrInvalidInput)
	}
	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}
	if req.DurationMinutes != nil {
		d := *req.DurationMinutes
		if d < domain.MinDurationMinutes || d > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
