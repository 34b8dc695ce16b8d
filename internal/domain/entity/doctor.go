package entity

type Doctor struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string `gorm:"type:varchar(255);not null;index:idx_doctors_name" json:"name"`
	NHS            string `gorm:"column:nhs;type:varchar(50)" json:"nhs,omitempty"`
	Email          string `gorm:"type:varchar(255);index:idx_doctors_email" json:"email,omitempty"`
	Specialization string `gorm:"type:varchar(255);index:idx_doctors_specialization" json:"specialization,omitempty"`
	Phone          string `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address        string `gorm:"type:text" json:"address,omitempty"`
	Notes          string `gorm:"type:text" json:"notes,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) PrimaryKey() any {
	return d.ID
}

func (d *Doctor) Identifier() DoctorID {
	return DoctorIDFromKey(d.ID)
}
