package repository

import (
	"hospital-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicineRepository interface {
	Create(db *gorm.DB, medicine *entity.Medicine) error
	InsertIfAbsent(db *gorm.DB, medicine *entity.Medicine) (bool, error)
	FindByID(db *gorm.DB, id uint) (*entity.Medicine, error)
	FindAll(db *gorm.DB, filter entity.MedicineFilter) ([]entity.Medicine, error)
	Update(db *gorm.DB, medicine *entity.Medicine) error
	// DecrementStock takes one unit if any is left; returns rows affected.
	DecrementStock(db *gorm.DB, id uint) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
