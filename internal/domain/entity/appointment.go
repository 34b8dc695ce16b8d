package entity

import (
	"strings"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment is a booked consultation. DoctorName and PatientName are
// snapshots taken at booking time and are not refreshed when the doctor or
// patient record is later renamed.
type Appointment struct {
	ID          int64             `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Doctor      DoctorID          `gorm:"column:doctor;type:varchar(64);not null;index:idx_appointments_by_doctor" json:"doctor"`
	DoctorName  string            `gorm:"type:varchar(255)" json:"doctorName,omitempty"`
	Patient     PatientID         `gorm:"column:patient;type:varchar(255);not null;index:idx_appointments_by_patient" json:"patient"`
	PatientName string            `gorm:"type:varchar(255)" json:"patientName,omitempty"`
	Date        string            `gorm:"type:varchar(10);not null;index:idx_appointments_by_date" json:"date"`
	Time        string            `gorm:"type:varchar(5);not null" json:"time"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled'" json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) PrimaryKey() any {
	return a.ID
}

// IsCancelled checks if the appointment no longer holds its slot
func (a *Appointment) IsCancelled() bool {
	return strings.EqualFold(string(a.Status), string(AppointmentStatusCancelled))
}

// Occupies reports whether the appointment holds the given doctor/date/time slot.
func (a *Appointment) Occupies(doctor DoctorID, date, slot string) bool {
	return !a.IsCancelled() && a.Doctor == doctor && a.Date == date && a.Time == slot
}
