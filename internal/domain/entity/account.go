package entity

import "time"

// Account is a staff or patient login credential. Password is stored as
// provided.
type Account struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username   string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_username" json:"username"`
	Password   string     `gorm:"type:varchar(255);not null" json:"-"`
	Role       Role       `gorm:"type:varchar(20);not null" json:"role"`
	LastActive *time.Time `json:"last_active,omitempty"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) PrimaryKey() any {
	return a.ID
}
