package domain

// Default booking parameters, used when the configuration omits them.
const (
	DefaultMinAdvanceBookingHours = 24
	DefaultMaxAdvanceBookingDays  = 90
	DefaultDurationMinutes        = 30
	DefaultSlotIntervalMinutes    = 30
)

// Business validation limits.
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500

	DefaultListLimit = 100
	MaxListLimit     = 500
)

// Time format constants.
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
