package repository

import (
	"strings"

	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct {
	col *Collection[entity.Doctor, *entity.Doctor]
}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{col: NewCollection[entity.Doctor, *entity.Doctor](entity.CollectionDoctors, "id")}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	_, err := r.col.Add(db, doctor)
	return err
}

func (r *doctorRepository) InsertIfAbsent(db *gorm.DB, doctor *entity.Doctor) (bool, error) {
	return r.col.InsertIfAbsent(db, doctor)
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uint) (*entity.Doctor, error) {
	return r.col.Get(db, id)
}

func (r *doctorRepository) FindByEmail(db *gorm.DB, email string) (*entity.Doctor, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	return r.col.FindOneFold(db, "email", email)
}

func (r *doctorRepository) FindAll(db *gorm.DB, search string) ([]entity.Doctor, error) {
	return r.col.Scan(db, ScanOptions[entity.Doctor]{
		Search:       search,
		SearchFields: []string{"name", "specialization", "email"},
	})
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return r.col.Put(db, doctor)
}

func (r *doctorRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	return r.col.Delete(db, id)
}

func (r *doctorRepository) Count(db *gorm.DB) (int64, error) {
	return r.col.Count(db)
}
