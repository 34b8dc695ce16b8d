package entity

// Medicine is a stock-keeping unit in the pharmacy inventory.
type Medicine struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Drug         string `gorm:"type:varchar(255);not null;index:idx_medicines_drug" json:"drug"`
	Stock        int    `gorm:"not null;default:0;index:idx_medicines_stock" json:"stock"`
	Form         string `gorm:"type:varchar(100)" json:"form,omitempty"`
	Strength     string `gorm:"type:varchar(100)" json:"strength,omitempty"`
	Manufacturer string `gorm:"type:varchar(255)" json:"manufacturer,omitempty"`
}

func (Medicine) TableName() string {
	return "medicines"
}

func (m *Medicine) PrimaryKey() any {
	return m.ID
}

func (m *Medicine) InStock() bool {
	return m.Stock > 0
}

// LowStockThreshold is the inclusive upper bound of the "low" stock filter.
const LowStockThreshold = 5
