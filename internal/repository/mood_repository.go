package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"commitd/internal/model"
)

// MoodRepository handles storage of daily mood check-ins.
type MoodRepository struct {
	db  *gorm.DB
	hub *Hub
}

func NewMoodRepository(db *gorm.DB, hub *Hub) *MoodRepository {
	return &MoodRepository{db: db, hub: hub}
}

// Upsert records a mood for the given date, replacing any previous rating
// for that date.
func (r *MoodRepository) Upsert(ctx context.Context, mood *model.DailyMood) error {
	mood.Date = model.DateOf(mood.Date)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(mood).Error
	if err != nil {
		return fmt.Errorf("record mood: %w", err)
	}
	r.hub.Publish(Event{Type: EventMoodsChanged, Date: mood.Date})
	return nil
}

func (r *MoodRepository) ForDate(ctx context.Context, date time.Time) (*model.DailyMood, error) {
	var mood model.DailyMood
	err := r.db.WithContext(ctx).Where("date = ?", model.DateOf(date)).First(&mood).Error
	if err != nil {
		return nil, err
	}
	return &mood, nil
}

func (r *MoodRepository) ListInRange(ctx context.Context, start, end time.Time) ([]model.DailyMood, error) {
	var moods []model.DailyMood
	if err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", model.DateOf(start), model.DateOf(end)).
		Order("date ASC").
		Find(&moods).Error; err != nil {
		return nil, err
	}
	return moods, nil
}

func (r *MoodRepository) ListRecent(ctx context.Context, limit int) ([]model.DailyMood, error) {
	var moods []model.DailyMood
	if err := r.db.WithContext(ctx).
		Order("date DESC").
		Limit(limit).
		Find(&moods).Error; err != nil {
		return nil, err
	}
	return moods, nil
}

// AverageInRange returns the mean rating over the inclusive window, or 0
// when no entries exist.
func (r *MoodRepository) AverageInRange(ctx context.Context, start, end time.Time) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Model(&model.DailyMood{}).
		Where("date BETWEEN ? AND ?", model.DateOf(start), model.DateOf(end)).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// RangeSummary returns min, max and count of ratings over the inclusive
// window; min and max are 0 when the window is empty.
func (r *MoodRepository) RangeSummary(ctx context.Context, start, end time.Time) (minRating, maxRating int, count int64, err error) {
	var row struct {
		Min   sql.NullInt64
		Max   sql.NullInt64
		Count int64
	}
	err = r.db.WithContext(ctx).Model(&model.DailyMood{}).
		Where("date BETWEEN ? AND ?", model.DateOf(start), model.DateOf(end)).
		Select("MIN(rating) as min, MAX(rating) as max, COUNT(*) as count").
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return int(row.Min.Int64), int(row.Max.Int64), row.Count, nil
}

func (r *MoodRepository) ListAll(ctx context.Context) ([]model.DailyMood, error) {
	var moods []model.DailyMood
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&moods).Error; err != nil {
		return nil, err
	}
	return moods, nil
}

// DeleteAll removes every mood record. Used by the bulk data-clear operation.
func (r *MoodRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.DailyMood{}).Error; err != nil {
		return fmt.Errorf("clear moods: %w", err)
	}
	r.hub.Publish(Event{Type: EventMoodsChanged})
	return nil
}

// IsNotFound reports whether err is the storage layer's record-not-found.
func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
