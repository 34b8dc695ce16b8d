package repository

import (
	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"gorm.io/gorm"
)

type contactMessageRepository struct {
	col *Collection[entity.ContactMessage, *entity.ContactMessage]
}

func NewContactMessageRepository() domainRepo.ContactMessageRepository {
	return &contactMessageRepository{
		col: NewCollection[entity.ContactMessage, *entity.ContactMessage](entity.CollectionContactMessages, "id"),
	}
}

func (r *contactMessageRepository) Create(db *gorm.DB, message *entity.ContactMessage) error {
	_, err := r.col.Add(db, message)
	return err
}

func (r *contactMessageRepository) FindByID(db *gorm.DB, id uint) (*entity.ContactMessage, error) {
	return r.col.Get(db, id)
}

func (r *contactMessageRepository) FindAll(db *gorm.DB, search string) ([]entity.ContactMessage, error) {
	return r.col.Scan(db, ScanOptions[entity.ContactMessage]{
		Search:       search,
		SearchFields: []string{"name", "email", "message"},
		Reverse:      true,
	})
}

func (r *contactMessageRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	return r.col.Delete(db, id)
}
