package entity

import "time"

type ContactMessage struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string    `gorm:"type:varchar(255);not null" json:"name"`
	Email   string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone   string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Message string    `gorm:"type:text;not null" json:"message"`
	TS      time.Time `gorm:"column:ts;not null;index:idx_contact_messages_ts" json:"ts"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

func (m *ContactMessage) PrimaryKey() any {
	return m.ID
}
