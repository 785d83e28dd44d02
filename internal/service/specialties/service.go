package specialties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	specialtyRepo "github.com/agendamed/scheduling-service/internal/infra/storage/specialty"
	"github.com/agendamed/scheduling-service/internal/service/specialties/models"
)

// Service handles medical specialties.
type Service struct {
	repo   SpecialtyRepository
	logger Logger
}

func NewService(repo SpecialtyRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create registers a specialty.
func (s *Service) Create(ctx context.Context, req *models.CreateSpecialtyRequest) (*models.SpecialtyResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		s.logger.Warn("Create: empty specialty name")
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	created, err := s.repo.Create(ctx, req.ToDomainSpecialty())
	if err != nil {
		if errors.Is(err, specialtyRepo.ErrSpecialtyAlreadyExists) {
			s.logger.Warn("Create: specialty %q already exists", req.Name)
			return nil, ErrSpecialtyAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: specialty id=%d registered", created.ID)
	return models.FromDomainSpecialty(created), nil
}

// GetByID fetches one specialty.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SpecialtyResponse, error) {
	specialty, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, specialtyRepo.ErrSpecialtyNotFound) {
			s.logger.Warn("GetByID: specialty id=%d not found", id)
			return nil, ErrSpecialtyNotFound
		}
		s.logger.Error("GetByID: repository error for specialty id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSpecialty(specialty), nil
}

// List returns specialties, optionally only active ones.
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.SpecialtyListResponse, error) {
	specialties, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSpecialties(specialties), nil
}
