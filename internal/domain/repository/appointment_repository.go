package repository

import (
	"hospital-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	FindByDoctorAndDate(db *gorm.DB, doctor entity.DoctorID, date string) ([]entity.Appointment, error)
	FindByDoctor(db *gorm.DB, doctor entity.DoctorID) ([]entity.Appointment, error)
	FindByPatient(db *gorm.DB, patient entity.PatientID) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
}
