package service

import (
	"context"
	"fmt"
	"time"

	"commitd/internal/model"
	"commitd/internal/repository"
)

// MoodService wraps the daily mood check-in.
type MoodService struct {
	moodRepo *repository.MoodRepository
}

func NewMoodService(moodRepo *repository.MoodRepository) *MoodService {
	return &MoodService{moodRepo: moodRepo}
}

// RecordMood stores a rating for the given date, replacing an earlier
// check-in on the same date. Out-of-range ratings are rejected before
// anything touches storage.
func (s *MoodService) RecordMood(ctx context.Context, date time.Time, rating int) error {
	if !model.ValidRating(rating) {
		return fmt.Errorf("%w: mood rating must be between %d and %d, got %d",
			ErrValidation, model.MinMoodRating, model.MaxMoodRating, rating)
	}
	mood := model.DailyMood{Date: model.DateOf(date), Rating: rating}
	if err := s.moodRepo.Upsert(ctx, &mood); err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return nil
}

// MoodForDate returns the check-in for a date, or nil when there is none.
func (s *MoodService) MoodForDate(ctx context.Context, date time.Time) (*model.DailyMood, error) {
	mood, err := s.moodRepo.ForDate(ctx, date)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return mood, nil
}

// HasMoodForDate reports whether a check-in exists for the date.
func (s *MoodService) HasMoodForDate(ctx context.Context, date time.Time) (bool, error) {
	mood, err := s.MoodForDate(ctx, date)
	if err != nil {
		return false, err
	}
	return mood != nil, nil
}

func (s *MoodService) ListRecent(ctx context.Context, limit int) ([]model.DailyMood, error) {
	return s.moodRepo.ListRecent(ctx, limit)
}
