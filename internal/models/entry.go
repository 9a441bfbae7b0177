package models

import "time"

// Entry is a single block of logged working time. Entries are never edited.
type Entry struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`

	Date        string `gorm:"type:varchar(10);not null;index"` // YYYY-MM-DD
	Hours       string `gorm:"type:text"`                       // kept as entered
	Description string `gorm:"type:text"`
}
