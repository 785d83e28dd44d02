package models

import (
	"strings"
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// CreateSpecialtyRequest carries the fields to register a specialty.
type CreateSpecialtyRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// SpecialtyResponse is the outward representation of a specialty.
type SpecialtyResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Active      bool    `json:"active"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// SpecialtyListResponse wraps a list of specialties.
type SpecialtyListResponse struct {
	Specialties []*SpecialtyResponse `json:"specialties"`
	Total       int                  `json:"total"`
}

// ToDomainSpecialty builds a domain specialty from the create request.
func (r *CreateSpecialtyRequest) ToDomainSpecialty() *domain.Specialty {
	return &domain.Specialty{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Active:      true,
	}
}

// FromDomainSpecialty converts a domain specialty to its response form.
func FromDomainSpecialty(s *domain.Specialty) *SpecialtyResponse {
	return &SpecialtyResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainSpecialties converts a slice of domain specialties.
func FromDomainSpecialties(specialties []*domain.Specialty) *SpecialtyListResponse {
	out := make([]*SpecialtyResponse, 0, len(specialties))
	for _, s := range specialties {
		out = append(out, FromDomainSpecialty(s))
	}
	return &SpecialtyListResponse{Specialties: out, Total: len(out)}
}
