package entity

import "time"

// RestockRequest is raised when a prescription finds its medicine out of stock.
type RestockRequest struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MedicineID   uint      `gorm:"not null;index:idx_restock_requests_medicine" json:"medicineId"`
	MedicineName string    `gorm:"type:varchar(255)" json:"medicineName,omitempty"`
	RequestedBy  string    `gorm:"type:varchar(255)" json:"requestedBy,omitempty"`
	Reason       string    `gorm:"type:text" json:"reason,omitempty"`
	TS           time.Time `gorm:"column:ts;not null" json:"ts"`
}

func (RestockRequest) TableName() string {
	return "restock_requests"
}

func (r *RestockRequest) PrimaryKey() any {
	return r.ID
}
