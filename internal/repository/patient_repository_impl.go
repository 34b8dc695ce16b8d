package repository

import (
	"strings"

	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct {
	col *Collection[entity.Patient, *entity.Patient]
}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{col: NewCollection[entity.Patient, *entity.Patient](entity.CollectionPatients, "id")}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	_, err := r.col.Add(db, patient)
	return err
}

func (r *patientRepository) InsertIfAbsent(db *gorm.DB, patient *entity.Patient) (bool, error) {
	return r.col.InsertIfAbsent(db, patient)
}

func (r *patientRepository) FindByID(db *gorm.DB, id uint) (*entity.Patient, error) {
	return r.col.Get(db, id)
}

func (r *patientRepository) FindByNHS(db *gorm.DB, nhs string) (*entity.Patient, error) {
	nhs = strings.TrimSpace(nhs)
	if nhs == "" {
		return nil, nil
	}
	return r.col.FindOne(db, "nhs", nhs)
}

func (r *patientRepository) FindByEmail(db *gorm.DB, email string) (*entity.Patient, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	return r.col.FindOneFold(db, "email", email)
}

func (r *patientRepository) FindAll(db *gorm.DB, search string) ([]entity.Patient, error) {
	return r.col.Scan(db, ScanOptions[entity.Patient]{Search: search, SearchFields: []string{"name", "nhs", "email"}})
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return r.col.Put(db, patient)
}

func (r *patientRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	return r.col.Delete(db, id)
}

func (r *patientRepository) Count(db *gorm.DB) (int64, error) {
	return r.col.Count(db)
}
