package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
	appointmentRepo "github.com/agendamed/scheduling-service/internal/infra/storage/appointment"
	doctorRepo "github.com/agendamed/scheduling-service/internal/infra/storage/doctor"
	"github.com/agendamed/scheduling-service/internal/scheduling"
	"github.com/agendamed/scheduling-service/pkg/ptr"
	"github.com/agendamed/scheduling-service/pkg/txmanager"
)

const operation = "reschedule"

// UseCase moves an appointment to a new slot. The appointment being moved is
// excluded from the conflict set so it never collides with itself; the audit
// trail of previous starts accumulates in the notes.
type UseCase struct {
	appointmentRepo  AppointmentRepository
	doctorRepo       DoctorRepository
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
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	cfg scheduling.Config,
	metrics BookingMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		doctorRepo:       doctorRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		cfg:              cfg,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute moves the appointment or reports why it cannot be moved.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, newStart=%s",
		req.AppointmentID, req.NewStartsAt.Format("2006-01-02 15:04"))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		uc.metrics.ObserveBookingDecision(operation, "invalid_input")
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: appointment lookup failed: %v", err)
			return fmt.Errorf("%w: appointment lookup: %v", ErrInternal, err)
		}

		if !appointment.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d in status %s cannot be rescheduled",
				appointment.ID, appointment.Status)
			return ErrAlreadyCancelled
		}

		doctor, err := uc.doctorRepo.GetByID(txCtx, appointment.DoctorID)
		if err != nil {
			if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
				uc.logger.Error("RescheduleAppointment: doctor id=%d missing for appointment id=%d",
					appointment.DoctorID, appointment.ID)
				return fmt.Errorf("%w: doctor missing", ErrInternal)
			}
			uc.logger.Error("RescheduleAppointment: doctor lookup failed: %v", err)
			return fmt.Errorf("%w: doctor lookup: %v", ErrInternal, err)
		}

		windows, err := uc.availabilityRepo.ListByDoctor(txCtx, appointment.DoctorID, true)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: windows lookup failed: %v", err)
			return fmt.Errorf("%w: windows lookup: %v", ErrInternal, err)
		}

		busy, err := uc.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
			DoctorID:       ptr.Ptr(appointment.DoctorID),
			OnlyActive:     true,
			LockForBooking: true,
		})
		if err != nil {
			uc.logger.Error("RescheduleAppointment: appointments lookup failed: %v", err)
			return fmt.Errorf("%w: appointments lookup: %v", ErrInternal, err)
		}

		duration := appointment.DurationMinutes
		if req.DurationMinutes != nil {
			duration = *req.DurationMinutes
		}

		err = scheduling.CheckAvailability(uc.cfg, doctor, windows, busy,
			req.NewStartsAt, duration, now, appointment.ID)
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: new slot rejected for appointment id=%d: %v",
				appointment.ID, err)
			return mapSchedulingError(err)
		}

		notes := appendAuditNote(appointment.Notes, appointment.StartsAt, req.Reason)
		if err := uc.appointmentRepo.Reschedule(txCtx, appointment.ID, req.NewStartsAt, duration, notes); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: update failed: %v", err)
			return fmt.Errorf("%w: update appointment: %v", ErrInternal, err)
		}

		appointment.StartsAt = req.NewStartsAt
		appointment.DurationMinutes = duration
		appointment.Status = domain.StatusRescheduled
		appointment.Notes = notes
		result = appointment
		return nil
	})
	if err != nil {
		// The transaction was already retried once inside the manager; a
		// persistent abort means another booking won the slot.
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("RescheduleAppointment: serialization failure for appointment id=%d: %v", req.AppointmentID, err)
			err = ErrSlotConflict
		}
		uc.metrics.ObserveBookingDecision(operation, outcomeLabel(err))
		return nil, err
	}

	uc.metrics.ObserveBookingDecision(operation, "accepted")
	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s",
		result.ID, result.StartsAt.Format("2006-01-02 15:04"))
	return fromDomain(result), nil
}

// appendAuditNote records the previous start and the stated reason so the
// history of moves survives in the appointment itself.
func appendAuditNote(notes *string, previousStart time.Time, reason string) *string {
	entry := fmt.Sprintf("rescheduled from %s: %s",
		previousStart.Format(time.RFC3339), strings.TrimSpace(reason))
	if notes == nil || *notes == "" {
		return ptr.Ptr(entry)
	}
	return ptr.Ptr(*notes + "\n" + entry)
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
	case errors.Is(err, ErrAppointmentNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyCancelled):
		return "already_cancelled"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
