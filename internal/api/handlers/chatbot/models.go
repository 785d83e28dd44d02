package chatbot

// MenuItem is one numbered option the bot presents.
type MenuItem struct {
	Number int    `json:"number"`
	ID     int64  `json:"id"`
	Label  string `json:"label"`
}

// MenuResponse is a numbered menu plus the ready-to-send message text.
type MenuResponse struct {
	Message string     `json:"message"`
	Items   []MenuItem `json:"items"`
}

// DateItem is one numbered date option the bot presents.
type DateItem struct {
	Number int    `json:"number"`
	Date   string `json:"date"`  // YYYY-MM-DD, for the follow-up slots call
	Label  string `json:"label"` // DD/MM/YYYY, shown to the subscriber
}

// DateMenuResponse is a numbered menu of bookable dates plus the
// ready-to-send message text.
type DateMenuResponse struct {
	Message string     `json:"message"`
	Items   []DateItem `json:"items"`
}

// DaySlotsResponse lists the open times of one doctor on one day.
type DaySlotsResponse struct {
	Message string   `json:"message"`
	Date    string   `json:"date"`
	Times   []string `json:"times"`
}

// BookAppointmentRequest books an appointment for the subscriber identified
// by phone number.
type BookAppointmentRequest struct {
	Phone    string `json:"phone"`
	DoctorID int64  `json:"doctorId"`
	StartsAt string `json:"startsAt"` // RFC 3339
}

// BookAppointmentResponse carries the confirmation text the bot sends back.
type BookAppointmentResponse struct {
	Message       string `json:"message"`
	AppointmentID int64  `json:"appointmentId"`
}
