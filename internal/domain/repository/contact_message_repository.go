package repository

import (
	"hospital-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type ContactMessageRepository interface {
	Create(db *gorm.DB, message *entity.ContactMessage) error
	FindByID(db *gorm.DB, id uint) (*entity.ContactMessage, error)
	// FindAll returns messages newest first.
	FindAll(db *gorm.DB, search string) ([]entity.ContactMessage, error)
	Delete(db *gorm.DB, id uint) (int64, error)
}
