package chatbot

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agendamed/scheduling-service/internal/api/handlers"
	"github.com/agendamed/scheduling-service/internal/domain"
	patientsService "github.com/agendamed/scheduling-service/internal/service/patients"
	createAppointment "github.com/agendamed/scheduling-service/internal/usecase/create_appointment"
	getOpenSlots "github.com/agendamed/scheduling-service/internal/usecase/get_open_slots"
	"github.com/agendamed/scheduling-service/pkg/ptr"
)

const (
	msgInvalidQuery       = "parâmetros de consulta inválidos"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidDate        = "formato de data inválido, esperado YYYY-MM-DD"
	msgInvalidStartsAt    = "formato de data/hora inválido, esperado RFC 3339"
	msgPatientNotFound    = "paciente não encontrado, faça seu cadastro primeiro"
	msgDoctorNotFound     = "médico não encontrado"
	msgSlotUnavailable    = "este horário não está mais disponível, escolha outro"
	msgNoSlots            = "não há horários disponíveis nesta data"
	msgNoDates            = "não há datas com horários disponíveis"
)

type Handler struct {
	specialtyService SpecialtyService
	doctorService    DoctorService
	patientService   PatientService
	slotsUseCase     GetOpenSlotsUseCase
	bookUseCase      CreateAppointmentUseCase
	logger           Logger
}

func NewHandler(
	specialtyService SpecialtyService,
	doctorService DoctorService,
	patientService PatientService,
	slotsUseCase GetOpenSlotsUseCase,
	bookUseCase CreateAppointmentUseCase,
	logger Logger,
) *Handler {
	return &Handler{
		specialtyService: specialtyService,
		doctorService:    doctorService,
		patientService:   patientService,
		slotsUseCase:     slotsUseCase,
		bookUseCase:      bookUseCase,
		logger:           logger,
	}
}

// Specialties GET /api/v1/chatbot/specialties
func (h *Handler) Specialties(w http.ResponseWriter, r *http.Request) {
	result, err := h.specialtyService.List(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /chatbot/specialties - Failed to list specialties: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]MenuItem, 0, len(result.Specialties))
	for i, s := range result.Specialties {
		items = append(items, MenuItem{Number: i + 1, ID: s.ID, Label: s.Name})
	}

	handlers.RespondJSON(w, http.StatusOK, &MenuResponse{
		Message: buildMenu("Escolha a especialidade:", items),
		Items:   items,
	})
}

// Doctors GET /api/v1/chatbot/doctors?specialty_id
func (h *Handler) Doctors(w http.ResponseWriter, r *http.Request) {
	specialtyID, err := strconv.ParseInt(r.URL.Query().Get("specialty_id"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /chatbot/doctors - Invalid specialty_id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.doctorService.List(r.Context(), domain.DoctorsFilter{
		SpecialtyID: ptr.Ptr(specialtyID),
		Active:      ptr.Ptr(true),
	})
	if err != nil {
		h.logger.Error("GET /chatbot/doctors - Failed to list doctors: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]MenuItem, 0, len(result.Doctors))
	for i, d := range result.Doctors {
		items = append(items, MenuItem{Number: i + 1, ID: d.ID, Label: d.Name})
	}

	handlers.RespondJSON(w, http.StatusOK, &MenuResponse{
		Message: buildMenu("Escolha o médico:", items),
		Items:   items,
	})
}

// Dates GET /api/v1/chatbot/dates?doctor_id
//
// Lists the upcoming dates on which the doctor has at least one open slot, so
// the bot can offer a date menu before asking for a time.
func (h *Handler) Dates(w http.ResponseWriter, r *http.Request) {
	doctorID, err := strconv.ParseInt(r.URL.Query().Get("doctor_id"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /chatbot/dates - Invalid doctor_id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.slotsUseCase.Execute(r.Context(), &getOpenSlots.Request{
		DoctorID: ptr.Ptr(doctorID),
	})
	if err != nil {
		switch {
		case errors.Is(err, getOpenSlots.ErrDoctorNotFound):
			h.logger.Warn("GET /chatbot/dates - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)
		default:
			h.logger.Error("GET /chatbot/dates - Failed to compute slots: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	seen := make(map[string]bool)
	dates := make([]string, 0)
	for _, d := range result.Doctors {
		for _, s := range d.Slots {
			date := s.Start.Format(domain.DateFormat)
			if !seen[date] {
				seen[date] = true
				dates = append(dates, date)
			}
		}
	}
	sort.Strings(dates)

	items := make([]DateItem, 0, len(dates))
	for i, date := range dates {
		day, _ := time.Parse(domain.DateFormat, date)
		items = append(items, DateItem{
			Number: i + 1,
			Date:   date,
			Label:  day.Format("02/01/2006"),
		})
	}

	message := msgNoDates
	if len(items) > 0 {
		var b strings.Builder
		b.WriteString("Escolha a data:")
		for _, item := range items {
			b.WriteString(fmt.Sprintf("\n%d. %s", item.Number, item.Label))
		}
		message = b.String()
	}

	handlers.RespondJSON(w, http.StatusOK, &DateMenuResponse{
		Message: message,
		Items:   items,
	})
}

// Slots GET /api/v1/chatbot/slots?doctor_id&date
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := strconv.ParseInt(r.URL.Query().Get("doctor_id"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /chatbot/slots - Invalid doctor_id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	day, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /chatbot/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.slotsUseCase.Execute(r.Context(), &getOpenSlots.Request{
		DoctorID: ptr.Ptr(doctorID),
		From:     ptr.Ptr(day),
		To:       ptr.Ptr(day.AddDate(0, 0, 1)),
	})
	if err != nil {
		switch {
		case errors.Is(err, getOpenSlots.ErrDoctorNotFound):
			h.logger.Warn("GET /chatbot/slots - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)
		default:
			h.logger.Error("GET /chatbot/slots - Failed to compute slots: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	times := make([]string, 0)
	for _, d := range result.Doctors {
		for _, s := range d.Slots {
			times = append(times, s.Start.Format(domain.TimeFormat))
		}
	}

	message := msgNoSlots
	if len(times) > 0 {
		message = fmt.Sprintf("Horários disponíveis em %s:\n%s",
			day.Format("02/01/2006"), strings.Join(times, ", "))
	}

	handlers.RespondJSON(w, http.StatusOK, &DaySlotsResponse{
		Message: message,
		Date:    day.Format(domain.DateFormat),
		Times:   times,
	})
}

// Book POST /api/v1/chatbot/appointments
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /chatbot/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		h.logger.Warn("POST /chatbot/appointments - Failed to parse startsAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	patient, err := h.patientService.GetByPhone(r.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, patientsService.ErrPatientNotFound):
			h.logger.Warn("POST /chatbot/appointments - Patient not found: phone=%s", req.Phone)
			handlers.RespondNotFound(w, msgPatientNotFound)
		default:
			h.logger.Error("POST /chatbot/appointments - Failed to find patient: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	result, err := h.bookUseCase.Execute(r.Context(), &createAppointment.Request{
		PatientID: patient.ID,
		DoctorID:  req.DoctorID,
		StartsAt:  startsAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrDoctorNotFound):
			h.logger.Warn("POST /chatbot/appointments - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)
		case errors.Is(err, createAppointment.ErrSlotConflict),
			errors.Is(err, createAppointment.ErrNoAvailabilityWindow),
			errors.Is(err, createAppointment.ErrOutsideBookingWindow),
			errors.Is(err, createAppointment.ErrDoctorInactive):
			h.logger.Warn("POST /chatbot/appointments - Slot unavailable: doctor_id=%d, starts_at=%s", req.DoctorID, req.StartsAt)
			handlers.RespondConflict(w, msgSlotUnavailable)
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /chatbot/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /chatbot/appointments - Failed to book: doctor_id=%d, error=%v", req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /chatbot/appointments - Appointment booked: appointment_id=%d, patient_id=%d", result.ID, patient.ID)
	handlers.RespondJSON(w, http.StatusCreated, &BookAppointmentResponse{
		Message: fmt.Sprintf("Consulta agendada para %s às %s. Até lá!",
			result.StartsAt.Format("02/01/2006"), result.StartsAt.Format(domain.TimeFormat)),
		AppointmentID: result.ID,
	})
}

func buildMenu(header string, items []MenuItem) string {
	var b strings.Builder
	b.WriteString(header)
	for _, item := range items {
		b.WriteString(fmt.Sprintf("\n%d. %s", item.Number, item.Label))
	}
	return b.String()
}
