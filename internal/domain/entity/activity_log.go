package entity

import "time"

// LogTimestampLayout renders activity log keys. Fixed width UTC so that
// lexical order equals chronological order.
const LogTimestampLayout = "2006-01-02T15:04:05.000000000Z"

// ActivityLog is an append-only administrative audit entry keyed by its
// creation timestamp.
type ActivityLog struct {
	Timestamp string `gorm:"primaryKey;type:varchar(40)" json:"timestamp"`
	Action    string `gorm:"type:text;not null" json:"action"`
}

func (ActivityLog) TableName() string {
	return "logs"
}

func (l *ActivityLog) PrimaryKey() any {
	return l.Timestamp
}

// FormatLogTimestamp renders t as an activity log key.
func FormatLogTimestamp(t time.Time) string {
	return t.UTC().Format(LogTimestampLayout)
}
