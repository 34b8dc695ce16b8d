package repository

import (
	"time"

	"hospital-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(db *gorm.DB, account *entity.Account) error
	InsertIfAbsent(db *gorm.DB, account *entity.Account) (bool, error)
	FindByID(db *gorm.DB, id uint) (*entity.Account, error)
	FindByUsername(db *gorm.DB, username string) (*entity.Account, error)
	FindAll(db *gorm.DB, search string) ([]entity.Account, error)
	Update(db *gorm.DB, account *entity.Account) error
	TouchLastActive(db *gorm.DB, id uint, at time.Time) error
	Delete(db *gorm.DB, id uint) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
