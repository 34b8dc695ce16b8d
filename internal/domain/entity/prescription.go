package entity

import "time"

type Prescription struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Doctor       string    `gorm:"column:doctor;type:varchar(255);not null;index:idx_prescriptions_by_doctor" json:"doctor"`
	Patient      PatientID `gorm:"column:patient;type:varchar(255);not null;index:idx_prescriptions_by_patient" json:"patient"`
	MedicineID   uint      `gorm:"not null;index:idx_prescriptions_by_medicine" json:"medicineId"`
	MedicineName string    `gorm:"type:varchar(255)" json:"medicineName"`
	Dosage       string    `gorm:"type:varchar(255)" json:"dosage,omitempty"`
	TS           time.Time `gorm:"column:ts;not null" json:"ts"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

func (p *Prescription) PrimaryKey() any {
	return p.ID
}
