// Command seed fills a development database with plausible specialties,
// doctors, availability windows and patients. It is idempotent enough for
// local use: duplicate CRMs and phones are skipped, not treated as failures.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	_ "github.com/lib/pq"

	"github.com/agendamed/scheduling-service/internal/config"
	"github.com/agendamed/scheduling-service/internal/domain"
	availabilityRepo "github.com/agendamed/scheduling-service/internal/infra/storage/availability"
	doctorRepo "github.com/agendamed/scheduling-service/internal/infra/storage/doctor"
	patientRepo "github.com/agendamed/scheduling-service/internal/infra/storage/patient"
	specialtyRepo "github.com/agendamed/scheduling-service/internal/infra/storage/specialty"
	"github.com/agendamed/scheduling-service/pkg/logger"
	"github.com/agendamed/scheduling-service/pkg/ptr"
	"github.com/agendamed/scheduling-service/pkg/types"
)

var specialtyNames = []string{
	"Clínica Geral",
	"Cardiologia",
	"Dermatologia",
	"Ortopedia",
	"Pediatria",
	"Ginecologia",
}

func main() {
	var (
		configPath = flag.String("config", "config.toml", "path to the configuration file")
		doctors    = flag.Int("doctors", 12, "doctors to create")
		patients   = flag.Int("patients", 40, "patients to create")
		seed       = flag.Uint64("seed", 0, "fake data seed, 0 means random")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	faker := gofakeit.New(*seed)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	ctx := context.Background()

	specialtyIDs := seedSpecialties(ctx, db, log)
	doctorIDs := seedDoctors(ctx, db, log, faker, specialtyIDs, *doctors)
	seedWindows(ctx, db, log, faker, doctorIDs)
	seedPatients(ctx, db, log, faker, *patients)

	log.Info("Seeding finished: %d specialties, %d doctors, %d patients",
		len(specialtyIDs), len(doctorIDs), *patients)
}

func seedSpecialties(ctx context.Context, db *sql.DB, log *logger.Logger) []int64 {
	repo := specialtyRepo.NewRepository(db)

	ids := make([]int64, 0, len(specialtyNames))
	for _, name := range specialtyNames {
		created, err := repo.Create(ctx, &domain.Specialty{Name: name, Active: true})
		if err != nil {
			if errors.Is(err, specialtyRepo.ErrSpecialtyAlreadyExists) {
				log.Warn("Specialty %q already exists, skipping", name)
				continue
			}
			log.Fatal("Failed to create specialty %q: %v", name, err)
		}
		ids = append(ids, created.ID)
	}
	return ids
}

func seedDoctors(ctx context.Context, db *sql.DB, log *logger.Logger, faker *gofakeit.Faker, specialtyIDs []int64, count int) []int64 {
	if len(specialtyIDs) == 0 {
		log.Warn("No specialties created, skipping doctors")
		return nil
	}

	repo := doctorRepo.NewRepository(db)

	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		crm := fmt.Sprintf("CRM/SP %d", 100000+faker.Number(0, 899999))
		doctor := &domain.Doctor{
			Name:        "Dr(a). " + faker.Name(),
			CRM:         crm,
			Phone:       ptr.Ptr(faker.Phone()),
			Email:       ptr.Ptr(faker.Email()),
			SpecialtyID: specialtyIDs[i%len(specialtyIDs)],
			Active:      true,
		}

		created, err := repo.Create(ctx, doctor)
		if err != nil {
			if errors.Is(err, doctorRepo.ErrDoctorAlreadyExists) {
				log.Warn("Doctor with %s already exists, skipping", crm)
				continue
			}
			log.Fatal("Failed to create doctor: %v", err)
		}
		ids = append(ids, created.ID)
	}
	return ids
}

// seedWindows gives every doctor a morning block on two or three weekdays and
// an afternoon block on one of them.
func seedWindows(ctx context.Context, db *sql.DB, log *logger.Logger, faker *gofakeit.Faker, doctorIDs []int64) {
	repo := availabilityRepo.NewRepository(db)

	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}

	for _, doctorID := range doctorIDs {
		days := faker.Number(2, 3)
		start := faker.Number(0, len(weekdays)-days)

		for i := 0; i < days; i++ {
			window := &domain.AvailabilityWindow{
				DoctorID:  doctorID,
				Weekday:   weekdays[start+i],
				StartTime: types.TimeString("08:00"),
				EndTime:   types.TimeString("12:00"),
				Active:    true,
			}
			if _, err := repo.Create(ctx, window); err != nil {
				log.Fatal("Failed to create availability window: %v", err)
			}
		}

		afternoon := &domain.AvailabilityWindow{
			DoctorID:  doctorID,
			Weekday:   weekdays[start],
			StartTime: types.TimeString("14:00"),
			EndTime:   types.TimeString("18:00"),
			Active:    true,
		}
		if _, err := repo.Create(ctx, afternoon); err != nil {
			log.Fatal("Failed to create availability window: %v", err)
		}
	}
}

func seedPatients(ctx context.Context, db *sql.DB, log *logger.Logger, faker *gofakeit.Faker, count int) {
	repo := patientRepo.NewRepository(db)

	for i := 0; i < count; i++ {
		birth := faker.DateRange(
			time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2010, time.December, 31, 0, 0, 0, 0, time.UTC),
		)
		patient := &domain.Patient{
			Name:      faker.Name(),
			Phone:     fmt.Sprintf("+55119%08d", faker.Number(0, 99999999)),
			Email:     ptr.Ptr(faker.Email()),
			CPF:       ptr.Ptr(fmt.Sprintf("%011d", faker.Number(0, 999999999))),
			BirthDate: ptr.Ptr(birth),
		}

		if _, err := repo.Create(ctx, patient); err != nil {
			if errors.Is(err, patientRepo.ErrPatientAlreadyExists) {
				log.Warn("Patient with phone %s already exists, skipping", patient.Phone)
				continue
			}
			log.Fatal("Failed to create patient: %v", err)
		}
	}
}
