package repository

import (
	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"
	"hospital-portal/internal/infrastructure/store"

	"gorm.io/gorm"
)

type medicineRepository struct {
	col *Collection[entity.Medicine, *entity.Medicine]
}

func NewMedicineRepository() domainRepo.MedicineRepository {
	return &medicineRepository{col: NewCollection[entity.Medicine, *entity.Medicine](entity.CollectionMedicines, "id")}
}

func (r *medicineRepository) Create(db *gorm.DB, medicine *entity.Medicine) error {
	_, err := r.col.Add(db, medicine)
	return err
}

func (r *medicineRepository) InsertIfAbsent(db *gorm.DB, medicine *entity.Medicine) (bool, error) {
	return r.col.InsertIfAbsent(db, medicine)
}

func (r *medicineRepository) FindByID(db *gorm.DB, id uint) (*entity.Medicine, error) {
	return r.col.Get(db, id)
}

func (r *medicineRepository) FindAll(db *gorm.DB, filter entity.MedicineFilter) ([]entity.Medicine, error) {
	opts := ScanOptions[entity.Medicine]{
		Search:       filter.Search,
		SearchFields: []string{"drug", "form", "manufacturer"},
	}
	if filter.Level != entity.StockLevelAny {
		opts.Filter = filter.Matches
	}
	return r.col.Scan(db, opts)
}

func (r *medicineRepository) Update(db *gorm.DB, medicine *entity.Medicine) error {
	return r.col.Put(db, medicine)
}

func (r *medicineRepository) DecrementStock(db *gorm.DB, id uint) (int64, error) {
	result := db.Model(&entity.Medicine{}).
		Where("id = ? AND stock > 0", id).
		UpdateColumn("stock", gorm.Expr("stock - 1"))
	if result.Error != nil {
		return 0, store.Translate(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *medicineRepository) Count(db *gorm.DB) (int64, error) {
	return r.col.Count(db)
}
