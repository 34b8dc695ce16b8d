package dto

import "time"

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          int64     `json:"id"`
	Doctor      string    `json:"doctor"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	Patient     string    `json:"patient"`
	PatientName string    `json:"patient_name,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// BookingResponse reports where the appointment was committed.
type BookingResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Outcome     string              `json:"outcome"`
	Fallback    bool                `json:"fallback"`
}

type SlotAvailabilityResponse struct {
	Doctor    string   `json:"doctor"`
	Date      string   `json:"date"`
	Available []string `json:"available"`
	Taken     []string `json:"taken"`
}
