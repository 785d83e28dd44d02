package get_open_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
	doctorRepo "github.com/agendamed/scheduling-service/internal/infra/storage/doctor"
	"github.com/agendamed/scheduling-service/internal/scheduling"
	"github.com/agendamed/scheduling-service/pkg/ptr"
)

// DefaultSearchDays bounds the search range when the caller omits "to".
const DefaultSearchDays = 30

// UseCase computes the open slots of one doctor or of every active doctor of
// a specialty. Reads run in one read-only transaction so every doctor is
// judged against the same snapshot.
type UseCase struct {
	appointmentRepo  AppointmentRepository
	doctorRepo       DoctorRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	cfg              scheduling.Config
	timeProvider     TimeProvider
	logger           Logger
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	cfg scheduling.Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		doctorRepo:       doctorRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		cfg:              cfg,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute returns the open slots for the requested doctors and range.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetOpenSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	from := now
	if req.From != nil && req.From.After(now) {
		from = *req.From
	}
	to := from.AddDate(0, 0, DefaultSearchDays)
	if req.To != nil {
		to = *req.To
	}
	if !from.Before(to) {
		return &Response{From: from, To: to, Doctors: []DoctorSlots{}}, nil
	}

	response := &Response{From: from, To: to, Doctors: []DoctorSlots{}}

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		doctors, err := uc.resolveDoctors(txCtx, req)
		if err != nil {
			return err
		}

		for _, doctor := range doctors {
			if !doctor.Active {
				continue
			}

			slots, err := uc.slotsForDoctor(txCtx, doctor, from, to, now)
			if err != nil {
				return err
			}
			response.Doctors = append(response.Doctors, DoctorSlots{
				DoctorID:   doctor.ID,
				DoctorName: doctor.Name,
				Slots:      slots,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetOpenSlots: %d doctors searched between %s and %s",
		len(response.Doctors), from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	return response, nil
}

func (uc *UseCase) resolveDoctors(ctx context.Context, req *Request) ([]*domain.Doctor, error) {
	if req.DoctorID != nil {
		doctor, err := uc.doctorRepo.GetByID(ctx, *req.DoctorID)
		if err != nil {
			if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
				uc.logger.Warn("GetOpenSlots: doctor id=%d not found", *req.DoctorID)
				return nil, ErrDoctorNotFound
			}
			uc.logger.Error("GetOpenSlots: doctor lookup failed: %v", err)
			return nil, fmt.Errorf("%w: doctor lookup: %v", ErrInternal, err)
		}
		return []*domain.Doctor{doctor}, nil
	}

	doctors, err := uc.doctorRepo.List(ctx, domain.DoctorsFilter{
		SpecialtyID: req.SpecialtyID,
		Active:      ptr.Ptr(true),
	})
	if err != nil {
		uc.logger.Error("GetOpenSlots: doctors lookup failed: %v", err)
		return nil, fmt.Errorf("%w: doctors lookup: %v", ErrInternal, err)
	}
	return doctors, nil
}

func (uc *UseCase) slotsForDoctor(ctx context.Context, doctor *domain.Doctor, from, to, now time.Time) ([]Slot, error) {
	windows, err := uc.availabilityRepo.ListByDoctor(ctx, doctor.ID, true)
	if err != nil {
		uc.logger.Error("GetOpenSlots: windows lookup failed for doctor id=%d: %v", doctor.ID, err)
		return nil, fmt.Errorf("%w: windows lookup: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		return []Slot{}, nil
	}

	busy, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		DoctorID:   ptr.Ptr(doctor.ID),
		From:       ptr.Ptr(from.AddDate(0, 0, -1)),
		To:         ptr.Ptr(to.AddDate(0, 0, 1)),
		OnlyActive: true,
	})
	if err != nil {
		uc.logger.Error("GetOpenSlots: appointments lookup failed for doctor id=%d: %v", doctor.ID, err)
		return nil, fmt.Errorf("%w: appointments lookup: %v", ErrInternal, err)
	}

	open := scheduling.OpenSlots(uc.cfg, windows, busy, from, to, now)
	slots := make([]Slot, 0, len(open))
	for _, s := range open {
		slots = append(slots, Slot{Start: s.Start, DurationMinutes: s.DurationMinutes})
	}
	return slots, nil
}
