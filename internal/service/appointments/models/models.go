package models

import (
	"errors"
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unrecognized status value.
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// CancelAppointmentRequest carries the cancellation reason.
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// UpdateAppointmentRequest rewrites the free-form notes.
type UpdateAppointmentRequest struct {
	Notes *string `json:"notes"`
}

// ListAppointmentsRequest filters the appointment listing.
type ListAppointmentsRequest struct {
	DoctorID  *int64     `json:"doctorId,omitempty"`
	PatientID *int64     `json:"patientId,omitempty"`
	Status    *string    `json:"status,omitempty"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}

// AppointmentResponse is the outward representation of an appointment.
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	PatientID          int64   `json:"patientId"`
	DoctorID           int64   `json:"doctorId"`
	StartsAt           string  `json:"startsAt"`
	EndsAt             string  `json:"endsAt"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	ConfirmedAt        *string `json:"confirmedAt,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// AppointmentListResponse wraps a page of appointments.
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// ToDomainFilter converts the listing request to a domain filter.
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		DoctorID:  r.DoctorID,
		PatientID: r.PatientID,
		From:      r.From,
		To:        r.To,
		Limit:     r.Limit,
		Offset:    r.Offset,
	}

	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListLimit
	}
	if filter.Limit > domain.MaxListLimit {
		filter.Limit = domain.MaxListLimit
	}
	return filter, nil
}

// FromDomainAppointment converts a domain appointment to its response form.
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                 a.ID,
		PatientID:          a.PatientID,
		DoctorID:           a.DoctorID,
		StartsAt:           a.StartsAt.Format(time.RFC3339),
		EndsAt:             a.EndsAt().Format(time.RFC3339),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          a.UpdatedAt.Format(time.RFC3339),
	}
	if a.ConfirmedAt != nil {
		s := a.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &s
	}
	if a.CancelledAt != nil {
		s := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}
	return resp
}

// FromDomainAppointments converts a slice of domain appointments.
func FromDomainAppointments(appointments []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: out, Total: len(out)}
}
