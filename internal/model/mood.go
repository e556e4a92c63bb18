package model

import "time"

// Mood rating bounds; one check-in per calendar date.
const (
	MinMoodRating = 1
	MaxMoodRating = 5
)

// DailyMood stores one mood rating per calendar date. A new write for the
// same date replaces the old one.
type DailyMood struct {
	ID        uint      `gorm:"primaryKey"`
	Date      time.Time `gorm:"uniqueIndex"` // calendar date, midnight UTC
	Rating    int       // within [MinMoodRating, MaxMoodRating]
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRating reports whether a rating is inside the allowed range.
func ValidRating(rating int) bool {
	return rating >= MinMoodRating && rating <= MaxMoodRating
}
