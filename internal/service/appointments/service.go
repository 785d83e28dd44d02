package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agendamed/scheduling-service/internal/domain"
	appointmentRepo "github.com/agendamed/scheduling-service/internal/infra/storage/appointment"
	"github.com/agendamed/scheduling-service/internal/service/appointments/models"
)

// Service handles reads and status transitions of appointments. Booking and
// rescheduling run through their own usecases because they need the
// availability check inside a transaction.
type Service struct {
	repo   AppointmentRepository
	logger Logger
}

func NewService(repo AppointmentRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetByID fetches one appointment.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.getDomain(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appointment), nil
}

// List returns appointments matching the request filter.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status filter %v", req.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAppointments(appointments), nil
}

// UpdateNotes rewrites the free-form notes of an appointment.
func (s *Service) UpdateNotes(ctx context.Context, id int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		s.logger.Warn("UpdateNotes: notes too long for appointment id=%d", id)
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	appointment, err := s.getDomain(ctx, "UpdateNotes", id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateNotes(ctx, id, req.Notes); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateNotes: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateNotes - repository error: %v", ErrInternal, err)
	}

	appointment.Notes = req.Notes
	s.logger.Info("UpdateNotes: appointment id=%d updated", id)
	return models.FromDomainAppointment(appointment), nil
}

// Confirm transitions an appointment to confirmed. Only scheduled and
// rescheduled appointments can be confirmed.
func (s *Service) Confirm(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.getDomain(ctx, "Confirm", id)
	if err != nil {
		return nil, err
	}

	if !appointment.CanBeConfirmed() {
		s.logger.Warn("Confirm: appointment id=%d in status %s cannot be confirmed", id, appointment.Status)
		return nil, ErrInvalidStateForConfirm
	}

	if err := s.repo.Confirm(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		// The UPDATE is guarded by status, so a concurrent transition between
		// our read and the write surfaces here as zero affected rows.
		if errors.Is(err, appointmentRepo.ErrInvalidStatusTransition) {
			s.logger.Warn("Confirm: appointment id=%d changed status concurrently", id)
			return nil, ErrInvalidStateForConfirm
		}
		s.logger.Error("Confirm: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	confirmed, err := s.getDomain(ctx, "Confirm", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: appointment id=%d confirmed", id)
	return models.FromDomainAppointment(confirmed), nil
}

// Cancel transitions an appointment to cancelled. Cancelling twice is
// rejected, cancelled is terminal.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		s.logger.Warn("Cancel: empty reason for appointment id=%d", id)
		return nil, fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: reason too long for appointment id=%d", id)
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appointment, err := s.getDomain(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if appointment.IsCancelled() {
		s.logger.Warn("Cancel: appointment id=%d already cancelled", id)
		return nil, ErrAlreadyCancelled
	}

	if err := s.repo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		if errors.Is(err, appointmentRepo.ErrInvalidStatusTransition) {
			s.logger.Warn("Cancel: appointment id=%d already cancelled concurrently", id)
			return nil, ErrAlreadyCancelled
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.getDomain(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", id)
	return models.FromDomainAppointment(cancelled), nil
}

func (s *Service) getDomain(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}
