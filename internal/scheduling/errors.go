package scheduling

import "errors"

var (
	// ErrDoctorInactive is returned when the doctor does not accept new bookings.
	ErrDoctorInactive = errors.New("scheduling: doctor is inactive")

	// ErrInvalidDuration is returned when the duration is not a positive
	// multiple of the configured slot interval.
	ErrInvalidDuration = errors.New("scheduling: invalid duration")

	// ErrOutsideBookingWindow is returned when the start violates the
	// minimum/maximum advance-booking bounds.
	ErrOutsideBookingWindow = errors.New("scheduling: start outside advance-booking bounds")

	// ErrNoAvailabilityWindow is returned when no active availability window
	// of the doctor fully contains the requested interval.
	ErrNoAvailabilityWindow = errors.New("scheduling: no availability window covers the requested time")

	// ErrSlotConflict is returned when the requested interval overlaps an
	// active appointment of the doctor.
	ErrSlotConflict = errors.New("scheduling: slot conflicts with an existing appointment")
)

// OutcomeLabel maps a resolver result to a metrics label value.
func OutcomeLabel(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrDoctorInactive):
		return "doctor_inactive"
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrOutsideBookingWindow):
		return "outside_booking_window"
	case errors.Is(err, ErrNoAvailabilityWindow):
		return "no_availability_window"
	case errors.Is(err, ErrSlotConflict):
		return "slot_conflict"
	default:
		return "error"
	}
}
