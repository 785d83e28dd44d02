package reschedule_appointment

import (
	"time"

	rescheduleAppointment "github.com/agendamed/scheduling-service/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewStartsAt     string `json:"newStartsAt"` // RFC 3339
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	Reason          string `json:"reason"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	PatientID       int64   `json:"patientId"`
	DoctorID        int64   `json:"doctorId"`
	StartsAt        string  `json:"startsAt"`
	EndsAt          string  `json:"endsAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the usecase model.
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*rescheduleAppointment.Request, error) {
	newStartsAt, err := time.Parse(time.RFC3339, r.NewStartsAt)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID:   appointmentID,
		NewStartsAt:     newStartsAt,
		DurationMinutes: r.DurationMinutes,
		Reason:          r.Reason,
	}, nil
}

// FromUseCaseResponse converts the usecase response into the HTTP model.
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		DoctorID:        resp.DoctorID,
		StartsAt:        resp.StartsAt.Format(time.RFC3339),
		EndsAt:          resp.EndsAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
