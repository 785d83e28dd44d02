package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	patientRepo "github.com/agendamed/scheduling-service/internal/infra/storage/patient"
	"github.com/agendamed/scheduling-service/internal/service/patients/models"
)

// Service handles patient records.
type Service struct {
	repo   PatientRepository
	logger Logger
}

func NewService(repo PatientRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create registers a patient.
func (s *Service) Create(ctx context.Context, req *models.CreatePatientRequest) (*models.PatientResponse, error) {
	if err := validateNamePhone(req.Name, req.Phone); err != nil {
		s.logger.Warn("Create: invalid patient payload: %v", err)
		return nil, err
	}

	patient, err := req.ToDomainPatient()
	if err != nil {
		s.logger.Warn("Create: invalid birth date %v", req.BirthDate)
		return nil, fmt.Errorf("%w: birth date must be YYYY-MM-DD", ErrInvalidInput)
	}

	created, err := s.repo.Create(ctx, patient)
	if err != nil {
		if errors.Is(err, patientRepo.ErrPatientAlreadyExists) {
			s.logger.Warn("Create: duplicate phone or CPF for patient %q", req.Name)
			return nil, ErrPatientAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: patient id=%d registered", created.ID)
	return models.FromDomainPatient(created), nil
}

// GetByID fetches one patient.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PatientResponse, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			s.logger.Warn("GetByID: patient id=%d not found", id)
			return nil, ErrPatientNotFound
		}
		s.logger.Error("GetByID: repository error for patient id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPatient(patient), nil
}

// GetByPhone fetches a patient by phone number.
func (s *Service) GetByPhone(ctx context.Context, phone string) (*models.PatientResponse, error) {
	patient, err := s.repo.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			s.logger.Warn("GetByPhone: no patient with phone %s", phone)
			return nil, ErrPatientNotFound
		}
		s.logger.Error("GetByPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByPhone - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPatient(patient), nil
}

// List returns a page of patients.
func (s *Service) List(ctx context.Context, limit, offset int) (*models.PatientListResponse, error) {
	patients, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPatients(patients), nil
}

// Update rewrites a patient record.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdatePatientRequest) (*models.PatientResponse, error) {
	if err := validateNamePhone(req.Name, req.Phone); err != nil {
		s.logger.Warn("Update: invalid patient payload for id=%d: %v", id, err)
		return nil, err
	}

	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			s.logger.Warn("Update: patient id=%d not found", id)
			return nil, ErrPatientNotFound
		}
		s.logger.Error("Update: repository error for patient id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := req.ApplyTo(patient); err != nil {
		s.logger.Warn("Update: invalid birth date %v for patient id=%d", req.BirthDate, id)
		return nil, fmt.Errorf("%w: birth date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		switch {
		case errors.Is(err, patientRepo.ErrPatientNotFound):
			return nil, ErrPatientNotFound
		case errors.Is(err, patientRepo.ErrPatientAlreadyExists):
			s.logger.Warn("Update: duplicate phone or CPF for patient id=%d", id)
			return nil, ErrPatientAlreadyExists
		default:
			s.logger.Error("Update: repository error for patient id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: patient id=%d updated", id)
	return models.FromDomainPatient(patient), nil
}

// Delete removes a patient record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			s.logger.Warn("Delete: patient id=%d not found", id)
			return ErrPatientNotFound
		}
		s.logger.Error("Delete: repository error for patient id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: patient id=%d removed", id)
	return nil
}

func validateNamePhone(name, phone string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	return nil
}
