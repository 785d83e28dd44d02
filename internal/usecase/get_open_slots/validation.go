package get_open_slots

import "fmt"

func validateRequest(req *Request) error {
	if req.DoctorID == nil && req.SpecialtyID == nil {
		return fmt.Errorf("%w: doctor_id or specialty_id is required", ErrInvalidInput)
	}
	if req.DoctorID != nil && req.SpecialtyID != nil {
		return fmt.Errorf("%w: doctor_id and specialty_id are mutually exclusive", ErrInvalidInput)
	}
	if req.DoctorID != nil && *req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctor_id must be positive", ErrInvalidInput)
	}
	if req.SpecialtyID != nil && *req.SpecialtyID <= 0 {
		return fmt.Errorf("%w: specialty_id must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}
	return nil
}
