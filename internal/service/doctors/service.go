package doctors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agendamed/scheduling-service/internal/domain"
	availabilityRepo "github.com/agendamed/scheduling-service/internal/infra/storage/availability"
	doctorRepo "github.com/agendamed/scheduling-service/internal/infra/storage/doctor"
	specialtyRepo "github.com/agendamed/scheduling-service/internal/infra/storage/specialty"
	"github.com/agendamed/scheduling-service/internal/service/doctors/models"
)

// Service handles doctors and their weekly availability windows.
type Service struct {
	doctorRepo       DoctorRepository
	specialtyRepo    SpecialtyRepository
	availabilityRepo AvailabilityRepository
	logger           Logger
}

func NewService(
	doctorRepo DoctorRepository,
	specialtyRepo SpecialtyRepository,
	availabilityRepo AvailabilityRepository,
	logger Logger,
) *Service {
	return &Service{
		doctorRepo:       doctorRepo,
		specialtyRepo:    specialtyRepo,
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// Create registers a doctor under an existing specialty.
func (s *Service) Create(ctx context.Context, req *models.CreateDoctorRequest) (*models.DoctorResponse, error) {
	if err := validateNameCRM(req.Name, req.CRM); err != nil {
		s.logger.Warn("Create: invalid doctor payload: %v", err)
		return nil, err
	}

	if _, err := s.specialtyRepo.GetByID(ctx, req.SpecialtyID); err != nil {
		if errors.Is(err, specialtyRepo.ErrSpecialtyNotFound) {
			s.logger.Warn("Create: specialty id=%d not found", req.SpecialtyID)
			return nil, ErrSpecialtyNotFound
		}
		s.logger.Error("Create: specialty lookup error: %v", err)
		return nil, fmt.Errorf("%w: Create - specialty lookup: %v", ErrInternal, err)
	}

	created, err := s.doctorRepo.Create(ctx, req.ToDomainDoctor())
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorAlreadyExists) {
			s.logger.Warn("Create: CRM %s already registered", req.CRM)
			return nil, ErrDoctorAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: doctor id=%d registered", created.ID)
	return models.FromDomainDoctor(created), nil
}

// GetByID fetches one doctor.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.DoctorResponse, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("GetByID: doctor id=%d not found", id)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("GetByID: repository error for doctor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainDoctor(doctor), nil
}

// List returns doctors matching the filter.
func (s *Service) List(ctx context.Context, filter domain.DoctorsFilter) (*models.DoctorListResponse, error) {
	doctors, err := s.doctorRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainDoctors(doctors), nil
}

// Update rewrites a doctor record, including the active flag.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateDoctorRequest) (*models.DoctorResponse, error) {
	if err := validateNameCRM(req.Name, req.CRM); err != nil {
		s.logger.Warn("Update: invalid doctor payload for id=%d: %v", id, err)
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("Update: doctor id=%d not found", id)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("Update: repository error for doctor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.SpecialtyID != doctor.SpecialtyID {
		if _, err := s.specialtyRepo.GetByID(ctx, req.SpecialtyID); err != nil {
			if errors.Is(err, specialtyRepo.ErrSpecialtyNotFound) {
				s.logger.Warn("Update: specialty id=%d not found", req.SpecialtyID)
				return nil, ErrSpecialtyNotFound
			}
			s.logger.Error("Update: specialty lookup error: %v", err)
			return nil, fmt.Errorf("%w: Update - specialty lookup: %v", ErrInternal, err)
		}
	}

	req.ApplyTo(doctor)

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		switch {
		case errors.Is(err, doctorRepo.ErrDoctorNotFound):
			return nil, ErrDoctorNotFound
		case errors.Is(err, doctorRepo.ErrDoctorAlreadyExists):
			s.logger.Warn("Update: CRM %s already registered", req.CRM)
			return nil, ErrDoctorAlreadyExists
		default:
			s.logger.Error("Update: repository error for doctor id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: doctor id=%d updated", id)
	return models.FromDomainDoctor(doctor), nil
}

// AddWindow registers a weekly availability window for a doctor.
func (s *Service) AddWindow(ctx context.Context, doctorID int64, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	if _, err := s.requireDoctor(ctx, "AddWindow", doctorID); err != nil {
		return nil, err
	}

	window, err := req.ToDomainWindow(doctorID)
	if err != nil {
		s.logger.Warn("AddWindow: invalid window payload for doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !window.StartTime.IsBefore(window.EndTime) {
		s.logger.Warn("AddWindow: start %s not before end %s", window.StartTime, window.EndTime)
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	created, err := s.availabilityRepo.Create(ctx, window)
	if err != nil {
		s.logger.Error("AddWindow: repository error for doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: AddWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddWindow: window id=%d added for doctor id=%d", created.ID, doctorID)
	return models.FromDomainWindow(created), nil
}

// ListWindows returns all windows of a doctor, inactive ones included.
func (s *Service) ListWindows(ctx context.Context, doctorID int64) (*models.WindowListResponse, error) {
	if _, err := s.requireDoctor(ctx, "ListWindows", doctorID); err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.ListByDoctor(ctx, doctorID, false)
	if err != nil {
		s.logger.Error("ListWindows: repository error for doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWindows(windows), nil
}

// DeactivateWindow marks a window inactive. Existing appointments booked
// through it stay untouched.
func (s *Service) DeactivateWindow(ctx context.Context, doctorID, windowID int64) error {
	if _, err := s.requireDoctor(ctx, "DeactivateWindow", doctorID); err != nil {
		return err
	}

	if err := s.availabilityRepo.Deactivate(ctx, doctorID, windowID); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("DeactivateWindow: window id=%d not found for doctor id=%d", windowID, doctorID)
			return ErrWindowNotFound
		}
		s.logger.Error("DeactivateWindow: repository error: %v", err)
		return fmt.Errorf("%w: DeactivateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateWindow: window id=%d deactivated for doctor id=%d", windowID, doctorID)
	return nil
}

func (s *Service) requireDoctor(ctx context.Context, op string, id int64) (*domain.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("%s: doctor id=%d not found", op, id)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("%s: repository error for doctor id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return doctor, nil
}

func validateNameCRM(name, crm string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(crm) == "" {
		return fmt.Errorf("%w: crm is required", ErrInvalidInput)
	}
	return nil
}
