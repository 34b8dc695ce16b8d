package repository

import (
	"hospital-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	InsertIfAbsent(db *gorm.DB, patient *entity.Patient) (bool, error)
	FindByID(db *gorm.DB, id uint) (*entity.Patient, error)
	FindByNHS(db *gorm.DB, nhs string) (*entity.Patient, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Patient, error)
	FindAll(db *gorm.DB, search string) ([]entity.Patient, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	Delete(db *gorm.DB, id uint) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
