package doctors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendamed/scheduling-service/internal/domain"
	availabilityRepo "github.com/agendamed/scheduling-service/internal/infra/storage/availability"
	doctorRepo "github.com/agendamed/scheduling-service/internal/infra/storage/doctor"
	specialtyRepo "github.com/agendamed/scheduling-service/internal/infra/storage/specialty"
	"github.com/agendamed/scheduling-service/internal/service/doctors/models"
)

type mockDoctorRepo struct {
	CreateFunc  func(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error)
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Doctor, error)
	ListFunc    func(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error)
	UpdateFunc  func(ctx context.Context, d *domain.Doctor) error
}

func (m *mockDoctorRepo) Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	return m.CreateFunc(ctx, d)
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockDoctorRepo) List(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockDoctorRepo) Update(ctx context.Context, d *domain.Doctor) error {
	return m.UpdateFunc(ctx, d)
}

type mockSpecialtyRepo struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Specialty, error)
}

func (m *mockSpecialtyRepo) GetByID(ctx context.Context, id int64) (*domain.Specialty, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockAvailabilityRepo struct {
	CreateFunc       func(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	ListByDoctorFunc func(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error)
	DeactivateFunc   func(ctx context.Context, doctorID, windowID int64) error
}

func (m *mockAvailabilityRepo) Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	return m.CreateFunc(ctx, w)
}

func (m *mockAvailabilityRepo) ListByDoctor(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
	return m.ListByDoctorFunc(ctx, doctorID, activeOnly)
}

func (m *mockAvailabilityRepo) Deactivate(ctx context.Context, doctorID, windowID int64) error {
	return m.DeactivateFunc(ctx, doctorID, windowID)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

var (
	_ DoctorRepository       = (*mockDoctorRepo)(nil)
	_ SpecialtyRepository    = (*mockSpecialtyRepo)(nil)
	_ AvailabilityRepository = (*mockAvailabilityRepo)(nil)
	_ Logger                 = (noopLogger{})
)

func testDoctor() *domain.Doctor {
	return &domain.Doctor{
		ID:          7,
		Name:        "Dr(a). Ana Souza",
		CRM:         "CRM/SP 123456",
		SpecialtyID: 2,
		Active:      true,
	}
}

func newTestService(doc *mockDoctorRepo, spec *mockSpecialtyRepo, avail *mockAvailabilityRepo) *Service {
	if doc == nil {
		doc = &mockDoctorRepo{}
	}
	if spec == nil {
		spec = &mockSpecialtyRepo{}
	}
	if avail == nil {
		avail = &mockAvailabilityRepo{}
	}
	return NewService(doc, spec, avail, noopLogger{})
}

func TestCreate_UnknownSpecialtyRejected(t *testing.T) {
	spec := &mockSpecialtyRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Specialty, error) {
			return nil, specialtyRepo.ErrSpecialtyNotFound
		},
	}

	svc := newTestService(nil, spec, nil)

	_, err := svc.Create(context.Background(), &models.CreateDoctorRequest{
		Name:        "Dr(a). Ana Souza",
		CRM:         "CRM/SP 123456",
		SpecialtyID: 99,
	})
	assert.ErrorIs(t, err, ErrSpecialtyNotFound)
}

func TestCreate_DuplicateCRMRejected(t *testing.T) {
	doc := &mockDoctorRepo{
		CreateFunc: func(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error) {
			return nil, doctorRepo.ErrDoctorAlreadyExists
		},
	}
	spec := &mockSpecialtyRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Specialty, error) {
			return &domain.Specialty{ID: id, Name: "Cardiologia", Active: true}, nil
		},
	}

	svc := newTestService(doc, spec, nil)

	_, err := svc.Create(context.Background(), &models.CreateDoctorRequest{
		Name:        "Dr(a). Ana Souza",
		CRM:         "CRM/SP 123456",
		SpecialtyID: 2,
	})
	assert.ErrorIs(t, err, ErrDoctorAlreadyExists)
}

func TestCreate_NewDoctorStartsActive(t *testing.T) {
	doc := &mockDoctorRepo{
		CreateFunc: func(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error) {
			assert.True(t, d.Active)
			created := *d
			created.ID = 7
			return &created, nil
		},
	}
	spec := &mockSpecialtyRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Specialty, error) {
			return &domain.Specialty{ID: id, Name: "Cardiologia", Active: true}, nil
		},
	}

	svc := newTestService(doc, spec, nil)

	resp, err := svc.Create(context.Background(), &models.CreateDoctorRequest{
		Name:        "  Dr(a). Ana Souza  ",
		CRM:         "CRM/SP 123456",
		SpecialtyID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Dr(a). Ana Souza", resp.Name)
	assert.True(t, resp.Active)
}

func TestAddWindow_StartMustPrecedeEnd(t *testing.T) {
	doc := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Doctor, error) {
			return testDoctor(), nil
		},
	}
	avail := &mockAvailabilityRepo{
		CreateFunc: func(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
			t.Fatal("invalid window must not reach the repository")
			return nil, nil
		},
	}

	svc := newTestService(doc, nil, avail)

	_, err := svc.AddWindow(context.Background(), 7, &models.CreateWindowRequest{
		Weekday:   "monday",
		StartTime: "12:00",
		EndTime:   "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddWindow_UnknownWeekdayRejected(t *testing.T) {
	doc := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Doctor, error) {
			return testDoctor(), nil
		},
	}

	svc := newTestService(doc, nil, nil)

	_, err := svc.AddWindow(context.Background(), 7, &models.CreateWindowRequest{
		Weekday:   "segunda",
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddWindow_ValidWindowCreated(t *testing.T) {
	doc := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Doctor, error) {
			return testDoctor(), nil
		},
	}
	avail := &mockAvailabilityRepo{
		CreateFunc: func(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
			assert.Equal(t, int64(7), w.DoctorID)
			assert.Equal(t, time.Monday, w.Weekday)
			assert.True(t, w.Active)
			created := *w
			created.ID = 11
			return &created, nil
		},
	}

	svc := newTestService(doc, nil, avail)

	resp, err := svc.AddWindow(context.Background(), 7, &models.CreateWindowRequest{
		Weekday:   "monday",
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "monday", resp.Weekday)
	assert.Equal(t, "09:00", resp.StartTime)
}

func TestAddWindow_UnknownDoctorRejected(t *testing.T) {
	doc := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Doctor, error) {
			return nil, doctorRepo.ErrDoctorNotFound
		},
	}

	svc := newTestService(doc, nil, nil)

	_, err := svc.AddWindow(context.Background(), 99, &models.CreateWindowRequest{
		Weekday:   "monday",
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDeactivateWindow_UnknownWindowRejected(t *testing.T) {
	doc := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Doctor, error) {
			return testDoctor(), nil
		},
	}
	avail := &mockAvailabilityRepo{
		DeactivateFunc: func(ctx context.Context, doctorID, windowID int64) error {
			return availabilityRepo.ErrWindowNotFound
		},
	}

	svc := newTestService(doc, nil, avail)

	err := svc.DeactivateWindow(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestUpdate_SpecialtyRevalidatedOnlyWhenChanged(t *testing.T) {
	lookups := 0
	doc := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Doctor, error) {
			return testDoctor(), nil
		},
		UpdateFunc: func(ctx context.Context, d *domain.Doctor) error {
			return nil
		},
	}
	spec := &mockSpecialtyRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Specialty, error) {
			lookups++
			return &domain.Specialty{ID: id, Name: "Dermatologia", Active: true}, nil
		},
	}

	svc := newTestService(doc, spec, nil)

	_, err := svc.Update(context.Background(), 7, &models.UpdateDoctorRequest{
		Name:        "Dr(a). Ana Souza",
		CRM:         "CRM/SP 123456",
		SpecialtyID: 2,
		Active:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, lookups)

	resp, err := svc.Update(context.Background(), 7, &models.UpdateDoctorRequest{
		Name:        "Dr(a). Ana Souza",
		CRM:         "CRM/SP 123456",
		SpecialtyID: 3,
		Active:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, lookups)
	assert.Equal(t, int64(3), resp.SpecialtyID)
}
