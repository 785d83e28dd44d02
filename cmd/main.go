package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/agendamed/scheduling-service/internal/api/handlers/cancel_appointment"
	chatbotHandler "github.com/agendamed/scheduling-service/internal/api/handlers/chatbot"
	confirmAppointmentHandler "github.com/agendamed/scheduling-service/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/agendamed/scheduling-service/internal/api/handlers/create_appointment"
	doctorsHandler "github.com/agendamed/scheduling-service/internal/api/handlers/doctors"
	getAppointmentHandler "github.com/agendamed/scheduling-service/internal/api/handlers/get_appointment"
	getOpenSlotsHandler "github.com/agendamed/scheduling-service/internal/api/handlers/get_open_slots"
	healthHandler "github.com/agendamed/scheduling-service/internal/api/handlers/health"
	listAppointmentsHandler "github.com/agendamed/scheduling-service/internal/api/handlers/list_appointments"
	patientsHandler "github.com/agendamed/scheduling-service/internal/api/handlers/patients"
	rescheduleAppointmentHandler "github.com/agendamed/scheduling-service/internal/api/handlers/reschedule_appointment"
	specialtiesHandler "github.com/agendamed/scheduling-service/internal/api/handlers/specialties"
	updateAppointmentHandler "github.com/agendamed/scheduling-service/internal/api/handlers/update_appointment"
	"github.com/agendamed/scheduling-service/internal/api/middleware"
	"github.com/agendamed/scheduling-service/internal/config"
	appointmentRepo "github.com/agendamed/scheduling-service/internal/infra/storage/appointment"
	availabilityRepo "github.com/agendamed/scheduling-service/internal/infra/storage/availability"
	doctorRepo "github.com/agendamed/scheduling-service/internal/infra/storage/doctor"
	patientRepo "github.com/agendamed/scheduling-service/internal/infra/storage/patient"
	specialtyRepo "github.com/agendamed/scheduling-service/internal/infra/storage/specialty"
	"github.com/agendamed/scheduling-service/internal/scheduling"
	appointmentsService "github.com/agendamed/scheduling-service/internal/service/appointments"
	doctorsService "github.com/agendamed/scheduling-service/internal/service/doctors"
	patientsService "github.com/agendamed/scheduling-service/internal/service/patients"
	specialtiesService "github.com/agendamed/scheduling-service/internal/service/specialties"
	createAppointmentUC "github.com/agendamed/scheduling-service/internal/usecase/create_appointment"
	getOpenSlotsUC "github.com/agendamed/scheduling-service/internal/usecase/get_open_slots"
	rescheduleAppointmentUC "github.com/agendamed/scheduling-service/internal/usecase/reschedule_appointment"
	"github.com/agendamed/scheduling-service/pkg/logger"
	"github.com/agendamed/scheduling-service/pkg/metrics"
	"github.com/agendamed/scheduling-service/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting scheduling-service...")
	log.Info("Configuration loaded from config.toml")

	// metricsCollector stays nil when metrics are disabled; the booking
	// decision counter tolerates a nil receiver.
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	txMgr := txmanager.NewTransactionManager(db)

	// Repositories
	appointmentRepository := appointmentRepo.NewRepository(db)
	availabilityRepository := availabilityRepo.NewRepository(db)
	doctorRepository := doctorRepo.NewRepository(db)
	patientRepository := patientRepo.NewRepository(db)
	specialtyRepository := specialtyRepo.NewRepository(db)

	// Services
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	patientSvc := patientsService.NewService(patientRepository, log)
	specialtySvc := specialtiesService.NewService(specialtyRepository, log)
	doctorSvc := doctorsService.NewService(
		doctorRepository,
		specialtyRepository,
		availabilityRepository,
		log,
	)

	bookingCfg := scheduling.Config{
		MinAdvanceBookingHours: cfg.Booking.MinAdvanceBookingHours,
		MaxAdvanceBookingDays:  cfg.Booking.MaxAdvanceBookingDays,
		DefaultDurationMinutes: cfg.Booking.DefaultDurationMinutes,
		SlotIntervalMinutes:    cfg.Booking.SlotIntervalMinutes,
	}

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		doctorRepository,
		patientRepository,
		availabilityRepository,
		txMgr,
		bookingCfg,
		metricsCollector,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		doctorRepository,
		availabilityRepository,
		txMgr,
		bookingCfg,
		metricsCollector,
		log,
	)
	getOpenSlotsUseCase := getOpenSlotsUC.NewUseCase(
		appointmentRepository,
		doctorRepository,
		availabilityRepository,
		txMgr,
		bookingCfg,
		log,
	)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getOpenSlots := getOpenSlotsHandler.NewHandler(getOpenSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentSvc, log)
	patients := patientsHandler.NewHandler(patientSvc, log)
	doctors := doctorsHandler.NewHandler(doctorSvc, log)
	specialties := specialtiesHandler.NewHandler(specialtySvc, log)
	chatbot := chatbotHandler.NewHandler(
		specialtySvc,
		doctorSvc,
		patientSvc,
		getOpenSlotsUseCase,
		createAppointmentUseCase,
		log,
	)
	health := healthHandler.NewHandler(db, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", health.Ready).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Appointments
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPost)

	// Open slot search
	api.HandleFunc("/availability/slots", getOpenSlots.Handle).Methods(http.MethodGet)

	// Patients
	api.HandleFunc("/patients", patients.Create).Methods(http.MethodPost)
	api.HandleFunc("/patients", patients.List).Methods(http.MethodGet)
	api.HandleFunc("/patients/{patientId}", patients.Get).Methods(http.MethodGet)
	api.HandleFunc("/patients/{patientId}", patients.Update).Methods(http.MethodPut)
	api.HandleFunc("/patients/{patientId}", patients.Delete).Methods(http.MethodDelete)

	// Doctors and their weekly availability
	api.HandleFunc("/doctors", doctors.Create).Methods(http.MethodPost)
	api.HandleFunc("/doctors", doctors.List).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{doctorId}", doctors.Get).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{doctorId}", doctors.Update).Methods(http.MethodPut)
	api.HandleFunc("/doctors/{doctorId}/availability", doctors.AddWindow).Methods(http.MethodPost)
	api.HandleFunc("/doctors/{doctorId}/availability", doctors.ListWindows).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{doctorId}/availability/{windowId}", doctors.DeactivateWindow).Methods(http.MethodDelete)

	// Specialties
	api.HandleFunc("/specialties", specialties.Create).Methods(http.MethodPost)
	api.HandleFunc("/specialties", specialties.List).Methods(http.MethodGet)
	api.HandleFunc("/specialties/{specialtyId}", specialties.Get).Methods(http.MethodGet)

	// Chatbot webhook surface
	if cfg.Chatbot.Enabled {
		bot := api.PathPrefix("/chatbot").Subrouter()
		bot.Use(middleware.WebhookAuth(cfg.Chatbot.WebhookSecret))
		bot.HandleFunc("/specialties", chatbot.Specialties).Methods(http.MethodGet)
		bot.HandleFunc("/doctors", chatbot.Doctors).Methods(http.MethodGet)
		bot.HandleFunc("/dates", chatbot.Dates).Methods(http.MethodGet)
		bot.HandleFunc("/slots", chatbot.Slots).Methods(http.MethodGet)
		bot.HandleFunc("/appointments", chatbot.Book).Methods(http.MethodPost)
		log.Info("Chatbot endpoints enabled")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
