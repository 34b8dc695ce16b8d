package repository

import (
	"time"

	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"
	"hospital-portal/internal/infrastructure/store"

	"gorm.io/gorm"
)

type accountRepository struct {
	col *Collection[entity.Account, *entity.Account]
}

func NewAccountRepository() domainRepo.AccountRepository {
	return &accountRepository{col: NewCollection[entity.Account, *entity.Account](entity.CollectionAccounts, "id")}
}

func (r *accountRepository) Create(db *gorm.DB, account *entity.Account) error {
	_, err := r.col.Add(db, account)
	return err
}

func (r *accountRepository) InsertIfAbsent(db *gorm.DB, account *entity.Account) (bool, error) {
	return r.col.InsertIfAbsent(db, account)
}

func (r *accountRepository) FindByID(db *gorm.DB, id uint) (*entity.Account, error) {
	return r.col.Get(db, id)
}

func (r *accountRepository) FindByUsername(db *gorm.DB, username string) (*entity.Account, error) {
	return r.col.FindOne(db, "username", username)
}

func (r *accountRepository) FindAll(db *gorm.DB, search string) ([]entity.Account, error) {
	return r.col.Scan(db, ScanOptions[entity.Account]{Search: search, SearchFields: []string{"username", "role"}})
}

func (r *accountRepository) Update(db *gorm.DB, account *entity.Account) error {
	return r.col.Put(db, account)
}

func (r *accountRepository) TouchLastActive(db *gorm.DB, id uint, at time.Time) error {
	err := db.Model(&entity.Account{}).Where("id = ?", id).Update("last_active", at).Error
	return store.Translate(err)
}

func (r *accountRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	return r.col.Delete(db, id)
}

func (r *accountRepository) Count(db *gorm.DB) (int64, error) {
	return r.col.Count(db)
}
