package repository

import (
	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	col *Collection[entity.Appointment, *entity.Appointment]
}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{col: NewCollection[entity.Appointment, *entity.Appointment](entity.CollectionAppointments, "id")}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	_, err := r.col.Add(db, appointment)
	return err
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	return r.col.Get(db, id)
}

func (r *appointmentRepository) FindByDoctorAndDate(db *gorm.DB, doctor entity.DoctorID, date string) ([]entity.Appointment, error) {
	return r.col.Scan(db, ScanOptions[entity.Appointment]{
		Where: map[string]any{"doctor": string(doctor), "date": date},
	})
}

func (r *appointmentRepository) FindByDoctor(db *gorm.DB, doctor entity.DoctorID) ([]entity.Appointment, error) {
	return r.col.Scan(db, ScanOptions[entity.Appointment]{Where: map[string]any{"doctor": string(doctor)}})
}

func (r *appointmentRepository) FindByPatient(db *gorm.DB, patient entity.PatientID) ([]entity.Appointment, error) {
	return r.col.Scan(db, ScanOptions[entity.Appointment]{Where: map[string]any{"patient": string(patient)}})
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	return r.col.Scan(db, ScanOptions[entity.Appointment]{})
}
