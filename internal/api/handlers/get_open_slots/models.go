package get_open_slots

import (
	"time"

	getOpenSlots "github.com/agendamed/scheduling-service/internal/usecase/get_open_slots"
)

// SlotResponse is one bookable interval.
type SlotResponse struct {
	Start           string `json:"start"`
	DurationMinutes int    `json:"durationMinutes"`
}

// DoctorSlotsResponse groups the open slots of one doctor.
type DoctorSlotsResponse struct {
	DoctorID   int64          `json:"doctorId"`
	DoctorName string         `json:"doctorName"`
	Slots      []SlotResponse `json:"slots"`
}

// OpenSlotsResponse HTTP response model
type OpenSlotsResponse struct {
	From    string                `json:"from"`
	To      string                `json:"to"`
	Doctors []DoctorSlotsResponse `json:"doctors"`
}

// FromUseCaseResponse converts the usecase response into the HTTP model.
func FromUseCaseResponse(resp *getOpenSlots.Response) *OpenSlotsResponse {
	doctors := make([]DoctorSlotsResponse, 0, len(resp.Doctors))
	for _, d := range resp.Doctors {
		slots := make([]SlotResponse, 0, len(d.Slots))
		for _, s := range d.Slots {
			slots = append(slots, SlotResponse{
				Start:           s.Start.Format(time.RFC3339),
				DurationMinutes: s.DurationMinutes,
			})
		}
		doctors = append(doctors, DoctorSlotsResponse{
			DoctorID:   d.DoctorID,
			DoctorName: d.DoctorName,
			Slots:      slots,
		})
	}
	return &OpenSlotsResponse{
		From:    resp.From.Format(time.RFC3339),
		To:      resp.To.Format(time.RFC3339),
		Doctors: doctors,
	}
}
