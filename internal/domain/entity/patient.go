package entity

import "strings"

// Patient is a registered patient. Password is empty for records that cannot
// sign in directly.
type Patient struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:varchar(255);not null;index:idx_patients_name" json:"name"`
	NHS      string `gorm:"column:nhs;type:varchar(50);index:idx_patients_nhs" json:"nhs"`
	Email    string `gorm:"type:varchar(255);index:idx_patients_email" json:"email,omitempty"`
	DOB      string `gorm:"column:dob;type:varchar(20)" json:"dob,omitempty"`
	Gender   string `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Phone    string `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address  string `gorm:"type:text" json:"address,omitempty"`
	Password string `gorm:"type:varchar(255)" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) PrimaryKey() any {
	return p.ID
}

// HasPassword reports whether the patient may sign in with the patient
// fallback path.
func (p *Patient) HasPassword() bool {
	return p.Password != ""
}

// Identifier returns the canonical patient id used on appointments and
// prescriptions.
func (p *Patient) Identifier() PatientID {
	if strings.TrimSpace(p.Email) != "" {
		return NewPatientID(p.Email)
	}
	return NewPatientID(p.NHS)
}
