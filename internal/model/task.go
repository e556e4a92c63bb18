package model

import "time"

// Task represents a single item on the daily board.
type Task struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string
	Category    Category   `gorm:"index"`
	DueDate     time.Time  `gorm:"index"` // calendar date, midnight UTC
	Completed   bool       `gorm:"default:false"`
	CompletedAt *time.Time // set iff Completed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
