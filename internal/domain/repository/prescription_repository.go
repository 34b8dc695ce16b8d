package repository

import (
	"hospital-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByPatient(db *gorm.DB, patient entity.PatientID) ([]entity.Prescription, error)
	FindAll(db *gorm.DB) ([]entity.Prescription, error)
}

type RestockRequestRepository interface {
	Create(db *gorm.DB, request *entity.RestockRequest) error
	FindAll(db *gorm.DB) ([]entity.RestockRequest, error)
}
