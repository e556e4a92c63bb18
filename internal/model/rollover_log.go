package model

import "time"

// RolloverLog records that the daily rollover already ran for a date. It
// makes the rollover idempotent per day: once a date is marked, a repeat
// invocation with the same dates is a no-op instead of pushing the tasks
// pulled up from tomorrow back to yesterday.
type RolloverLog struct {
	ID    uint      `gorm:"primaryKey"`
	Day   time.Time `gorm:"uniqueIndex"` // calendar date, midnight UTC
	RanAt time.Time
}
