package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendamed/scheduling-service/internal/domain"
	doctorRepo "github.com/agendamed/scheduling-service/internal/infra/storage/doctor"
	patientRepo "github.com/agendamed/scheduling-service/internal/infra/storage/patient"
	"github.com/agendamed/scheduling-service/internal/scheduling"
	"github.com/agendamed/scheduling-service/pkg/ptr"
	"github.com/agendamed/scheduling-service/pkg/txmanager"
)

const operation = "create"

// UseCase books an appointment. The availability check and the insert run in
// one serializable transaction so two bookings for the same doctor cannot
// both pass the conflict check.
type UseCase struct {
	appointmentRepo  AppointmentRepository
	doctorRepo       DoctorRepository
	patientRepo      PatientRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	cfg              scheduling.Config
	metrics          BookingMetrics
	timeProvider     TimeProvider
	logger           Logger
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	patientRepo PatientRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	cfg scheduling.Config,
	metrics BookingMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		cfg:              cfg,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute books the appointment or reports why it cannot be booked.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, doctor=%d, start=%s",
		req.PatientID, req.DoctorID, req.StartsAt.Format("2006-01-02 15:04"))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.metrics.ObserveBookingDecision(operation, "invalid_input")
		return nil, err
	}

	now := uc.timeProvider.Now()

	duration := uc.cfg.DefaultDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	if _, err := uc.patientRepo.GetByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			uc.logger.Warn("CreateAppointment: patient id=%d not found", req.PatientID)
			uc.metrics.ObserveBookingDecision(operation, "patient_not_found")
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateAppointment: patient lookup failed: %v", err)
		return nil, fmt.Errorf("%w: patient lookup: %v", ErrInternal, err)
	}

	var created *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		doctor, err := uc.doctorRepo.GetByID(txCtx, req.DoctorID)
		if err != nil {
			if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
				uc.logger.Warn("CreateAppointment: doctor id=%d not found", req.DoctorID)
				return ErrDoctorNotFound
			}
			uc.logger.Error("CreateAppointment: doctor lookup failed: %v", err)
			return fmt.Errorf("%w: doctor lookup: %v", ErrInternal, err)
		}

		windows, err := uc.availabilityRepo.ListByDoctor(txCtx, req.DoctorID, true)
		if err != nil {
			uc.logger.Error("CreateAppointment: windows lookup failed: %v", err)
			return fmt.Errorf("%w: windows lookup: %v", ErrInternal, err)
		}

		// Listing inside the transaction locks the doctor's rows (FOR UPDATE).
		busy, err := uc.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
			DoctorID:       ptr.Ptr(req.DoctorID),
			OnlyActive:     true,
			LockForBooking: true,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: appointments lookup failed: %v", err)
			return fmt.Errorf("%w: appointments lookup: %v", ErrInternal, err)
		}

		if err := scheduling.CheckAvailability(uc.cfg, doctor, windows, busy, req.StartsAt, duration, now, 0); err != nil {
			uc.logger.Warn("CreateAppointment: slot rejected for doctor id=%d: %v", req.DoctorID, err)
			return mapSchedulingError(err)
		}

		created, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			PatientID:       req.PatientID,
			DoctorID:        req.DoctorID,
			StartsAt:        req.StartsAt,
			DurationMinutes: duration,
			Status:          domain.StatusScheduled,
			Notes:           req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: insert failed: %v", err)
			return fmt.Errorf("%w: insert appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		// The transaction was already retried once inside the manager; a
		// persistent abort means another booking won the slot.
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: serialization failure for doctor id=%d: %v", req.DoctorID, err)
			err = ErrSlotConflict
		}
		uc.metrics.ObserveBookingDecision(operation, outcomeLabel(err))
		return nil, err
	}

	uc.metrics.ObserveBookingDecision(operation, "accepted")
	uc.logger.Info("CreateAppointment: appointment id=%d booked for doctor id=%d", created.ID, req.DoctorID)
	return fromDomain(created), nil
}

func mapSchedulingError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrDoctorInactive):
		return ErrDoctorInactive
	case errors.Is(err, scheduling.ErrInvalidDuration):
		return fmt.Errorf("%w: duration must be a multiple of the slot interval", ErrInvalidInput)
	case errors.Is(err, scheduling.ErrOutsideBookingWindow):
		return ErrOutsideBookingWindow
	case errors.Is(err, scheduling.ErrNoAvailabilityWindow):
		return ErrNoAvailabilityWindow
	case errors.Is(err, scheduling.ErrSlotConflict):
		return ErrSlotConflict
	default:
		return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
	}
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrDoctorInactive):
		return "doctor_inactive"
	case errors.Is(err, ErrOutsideBookingWindow):
		return "outside_booking_window"
	case errors.Is(err, ErrNoAvailabilityWindow):
		return "no_availability_window"
	case errors.Is(err, ErrSlotConflict):
		return "slot_conflict"
	case errors.Is(err, ErrDoctorNotFound):
		return "doctor_not_found"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
