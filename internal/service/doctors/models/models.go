package models

import (
	"errors"
	"strings"
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
	"github.com/agendamed/scheduling-service/pkg/types"
)

var (
	// ErrInvalidWeekday is returned when the weekday name is not recognized.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidTime is returned when a window bound is not HH:MM.
	ErrInvalidTime = errors.New("invalid time")
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday converts a lowercase english weekday name.
func ParseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidWeekday
	}
	return day, nil
}

// CreateDoctorRequest carries the fields to register a doctor.
type CreateDoctorRequest struct {
	Name        string  `json:"name"`
	CRM         string  `json:"crm"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	SpecialtyID int64   `json:"specialtyId"`
}

// UpdateDoctorRequest carries the fields to rewrite a doctor record.
type UpdateDoctorRequest struct {
	Name        string  `json:"name"`
	CRM         string  `json:"crm"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	SpecialtyID int64   `json:"specialtyId"`
	Active      bool    `json:"active"`
}

// CreateWindowRequest adds a weekly availability window.
type CreateWindowRequest struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DoctorResponse is the outward representation of a doctor.
type DoctorResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	CRM         string  `json:"crm"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	SpecialtyID int64   `json:"specialtyId"`
	Active      bool    `json:"active"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// DoctorListResponse wraps a page of doctors.
type DoctorListResponse struct {
	Doctors []*DoctorResponse `json:"doctors"`
	Total   int               `json:"total"`
}

// WindowResponse is the outward representation of an availability window.
type WindowResponse struct {
	ID        int64  `json:"id"`
	DoctorID  int64  `json:"doctorId"`
	Weekday   string `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Active    bool   `json:"active"`
}

// WindowListResponse wraps a doctor's windows.
type WindowListResponse struct {
	Windows []*WindowResponse `json:"windows"`
	Total   int               `json:"total"`
}

// ToDomainDoctor builds a domain doctor from the create request. New doctors
// start active.
func (r *CreateDoctorRequest) ToDomainDoctor() *domain.Doctor {
	return &domain.Doctor{
		Name:        strings.TrimSpace(r.Name),
		CRM:         strings.TrimSpace(r.CRM),
		Phone:       r.Phone,
		Email:       r.Email,
		SpecialtyID: r.SpecialtyID,
		Active:      true,
	}
}

// ApplyTo rewrites the mutable fields of a domain doctor.
func (r *UpdateDoctorRequest) ApplyTo(d *domain.Doctor) {
	d.Name = strings.TrimSpace(r.Name)
	d.CRM = strings.TrimSpace(r.CRM)
	d.Phone = r.Phone
	d.Email = r.Email
	d.SpecialtyID = r.SpecialtyID
	d.Active = r.Active
}

// ToDomainWindow builds a domain window from the create request.
func (r *CreateWindowRequest) ToDomainWindow(doctorID int64) (*domain.AvailabilityWindow, error) {
	weekday, err := ParseWeekday(r.Weekday)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	return &domain.AvailabilityWindow{
		DoctorID:  doctorID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		Active:    true,
	}, nil
}

// FromDomainDoctor converts a domain doctor to its response form.
func FromDomainDoctor(d *domain.Doctor) *DoctorResponse {
	return &DoctorResponse{
		ID:          d.ID,
		Name:        d.Name,
		CRM:         d.CRM,
		Phone:       d.Phone,
		Email:       d.Email,
		SpecialtyID: d.SpecialtyID,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   d.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainDoctors converts a slice of domain doctors.
func FromDomainDoctors(doctors []*domain.Doctor) *DoctorListResponse {
	out := make([]*DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, FromDomainDoctor(d))
	}
	return &DoctorListResponse{Doctors: out, Total: len(out)}
}

// FromDomainWindow converts a domain window to its response form.
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	return &WindowResponse{
		ID:        w.ID,
		DoctorID:  w.DoctorID,
		Weekday:   strings.ToLower(w.Weekday.String()),
		StartTime: string(w.StartTime),
		EndTime:   string(w.EndTime),
		Active:    w.Active,
	}
}

// FromDomainWindows converts a slice of domain windows.
func FromDomainWindows(windows []*domain.AvailabilityWindow) *WindowListResponse {
	out := make([]*WindowResponse, 0, len(windows))
	for _, w := range windows {
		out = append(out, FromDomainWindow(w))
	}
	return &WindowListResponse{Windows: out, Total: len(out)}
}
