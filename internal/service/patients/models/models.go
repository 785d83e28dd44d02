package models

import (
	"errors"
	"strings"
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
)

var (
	// ErrInvalidBirthDate is returned when the birth date is not YYYY-MM-DD.
	ErrInvalidBirthDate = errors.New("invalid birth date")
)

// CreatePatientRequest carries the fields to register a patient.
type CreatePatientRequest struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	CPF       *string `json:"cpf,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
}

// UpdatePatientRequest carries the fields to rewrite a patient record.
type UpdatePatientRequest struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	CPF       *string `json:"cpf,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
}

// PatientResponse is the outward representation of a patient.
type PatientResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	CPF       *string `json:"cpf,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// PatientListResponse wraps a page of patients.
type PatientListResponse struct {
	Patients []*PatientResponse `json:"patients"`
	Total    int                `json:"total"`
}

// ToDomainPatient builds a domain patient from the create request.
func (r *CreatePatientRequest) ToDomainPatient() (*domain.Patient, error) {
	birthDate, err := parseBirthDate(r.BirthDate)
	if err != nil {
		return nil, err
	}

	return &domain.Patient{
		Name:      strings.TrimSpace(r.Name),
		Phone:     strings.TrimSpace(r.Phone),
		Email:     r.Email,
		CPF:       r.CPF,
		BirthDate: birthDate,
	}, nil
}

// ApplyTo rewrites the mutable fields of a domain patient.
func (r *UpdatePatientRequest) ApplyTo(p *domain.Patient) error {
	birthDate, err := parseBirthDate(r.BirthDate)
	if err != nil {
		return err
	}

	p.Name = strings.TrimSpace(r.Name)
	p.Phone = strings.TrimSpace(r.Phone)
	p.Email = r.Email
	p.CPF = r.CPF
	p.BirthDate = birthDate
	return nil
}

// FromDomainPatient converts a domain patient to its response form.
func FromDomainPatient(p *domain.Patient) *PatientResponse {
	resp := &PatientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		CPF:       p.CPF,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if p.BirthDate != nil {
		s := p.BirthDate.Format(domain.DateFormat)
		resp.BirthDate = &s
	}
	return resp
}

// FromDomainPatients converts a slice of domain patients.
func FromDomainPatients(patients []*domain.Patient) *PatientListResponse {
	out := make([]*PatientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, FromDomainPatient(p))
	}
	return &PatientListResponse{Patients: out, Total: len(out)}
}

func parseBirthDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, ErrInvalidBirthDate
	}
	return &t, nil
}
