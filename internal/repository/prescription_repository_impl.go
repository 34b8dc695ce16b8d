package repository

import (
	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"gorm.io/gorm"
)

type prescriptionRepository struct {
	col *Collection[entity.Prescription, *entity.Prescription]
}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{col: NewCollection[entity.Prescription, *entity.Prescription](entity.CollectionPrescriptions, "id")}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	_, err := r.col.Add(db, prescription)
	return err
}

func (r *prescriptionRepository) FindByPatient(db *gorm.DB, patient entity.PatientID) ([]entity.Prescription, error) {
	return r.col.Scan(db, ScanOptions[entity.Prescription]{
		Where:   map[string]any{"patient": string(patient)},
		Reverse: true,
	})
}

func (r *prescriptionRepository) FindAll(db *gorm.DB) ([]entity.Prescription, error) {
	return r.col.Scan(db, ScanOptions[entity.Prescription]{Reverse: true})
}

type restockRequestRepository struct {
	col *Collection[entity.RestockRequest, *entity.RestockRequest]
}

func NewRestockRequestRepository() domainRepo.RestockRequestRepository {
	return &restockRequestRepository{
		col: NewCollection[entity.RestockRequest, *entity.RestockRequest](entity.CollectionRestockRequests, "id"),
	}
}

func (r *restockRequestRepository) Create(db *gorm.DB, request *entity.RestockRequest) error {
	_, err := r.col.Add(db, request)
	return err
}

func (r *restockRequestRepository) FindAll(db *gorm.DB) ([]entity.RestockRequest, error) {
	return r.col.Scan(db, ScanOptions[entity.RestockRequest]{Reverse: true})
}
