package service

import (
	"context"
	"time"

	"commitd/internal/model"
	"commitd/internal/repository"
)

// TaskStatistics summarizes completion for one date or window.
type TaskStatistics struct {
	CompletedCount int64
	TotalCount     int64
	CompletionRate float64
}

// CategoryStatistics carries completion figures for one category.
type CategoryStatistics struct {
	Category       model.Category
	CompletedCount int64
	TotalCount     int64
	CompletionRate float64
}

// MoodStatistics summarizes check-ins over a trailing window.
type MoodStatistics struct {
	AverageRating float64
	TotalEntries  int
	Distribution  map[int]int // count per rating value 1..5
}

// MoodTrendPoint is one recorded check-in on the trend line.
type MoodTrendPoint struct {
	Date   time.Time
	Rating int
}

// MoodRange carries min/max/count of ratings over a window.
type MoodRange struct {
	MinMood   int
	MaxMood   int
	MoodCount int64
}

// StatsService computes read-only summaries over task and mood history. It
// never mutates either store.
type StatsService struct {
	taskRepo *repository.TaskRepository
	moodRepo *repository.MoodRepository
}

func NewStatsService(taskRepo *repository.TaskRepository, moodRepo *repository.MoodRepository) *StatsService {
	return &StatsService{taskRepo: taskRepo, moodRepo: moodRepo}
}

// TaskStatistics summarizes one date. A date with no tasks reports a zero
// rate, never a division by zero.
func (s *StatsService) TaskStatistics(ctx context.Context, date time.Time) (TaskStatistics, error) {
	completed, err := s.taskRepo.CountForDate(ctx, date, true)
	if err != nil {
		return TaskStatistics{}, err
	}
	total, err := s.taskRepo.CountForDate(ctx, date, false)
	if err != nil {
		return TaskStatistics{}, err
	}
	return TaskStatistics{
		CompletedCount: completed,
		TotalCount:     total,
		CompletionRate: rate(completed, total),
	}, nil
}

// CategoryStatisticsInRange computes per-category completion over the
// inclusive window. Every category is present in the result; those with no
// tasks in range report a zero rate.
func (s *StatsService) CategoryStatisticsInRange(ctx context.Context, start, end time.Time) (map[model.Category]CategoryStatistics, error) {
	result := make(map[model.Category]CategoryStatistics, len(model.AllCategories()))
	for _, category := range model.AllCategories() {
		completed, err := s.taskRepo.CountInRangeByCategory(ctx, start, end, category, true)
		if err != nil {
			return nil, err
		}
		total, err := s.taskRepo.CountInRangeByCategory(ctx, start, end, category, false)
		if err != nil {
			return nil, err
		}
		result[category] = CategoryStatistics{
			Category:       category,
			CompletedCount: completed,
			TotalCount:     total,
			CompletionRate: rate(completed, total),
		}
	}
	return result, nil
}

// TaskCountsByCategory returns total task counts per category in range.
// Categories without tasks are absent from the map.
func (s *StatsService) TaskCountsByCategory(ctx context.Context, start, end time.Time) (map[model.Category]int64, error) {
	return s.countsByCategory(ctx, start, end, false)
}

// CompletedCountsByCategory returns completed task counts per category in
// range.
func (s *StatsService) CompletedCountsByCategory(ctx context.Context, start, end time.Time) (map[model.Category]int64, error) {
	return s.countsByCategory(ctx, start, end, true)
}

func (s *StatsService) countsByCategory(ctx context.Context, start, end time.Time, completedOnly bool) (map[model.Category]int64, error) {
	counts, err := s.taskRepo.CountsByCategory(ctx, start, end, completedOnly)
	if err != nil {
		return nil, err
	}
	result := make(map[model.Category]int64, len(counts))
	for _, c := range counts {
		result[c.Category] = c.Count
	}
	return result, nil
}

// MoodStatistics summarizes check-ins over the trailing `days`-day window
// ending at endDate inclusive.
func (s *StatsService) MoodStatistics(ctx context.Context, endDate time.Time, days int) (MoodStatistics, error) {
	start := model.WindowStart(model.DateOf(endDate), days)
	moods, err := s.moodRepo.ListInRange(ctx, start, endDate)
	if err != nil {
		return MoodStatistics{}, err
	}

	stats := MoodStatistics{
		TotalEntries: len(moods),
		Distribution: make(map[int]int),
	}
	var sum int
	for _, mood := range moods {
		sum += mood.Rating
		stats.Distribution[mood.Rating]++
	}
	if len(moods) > 0 {
		stats.AverageRating = float64(sum) / float64(len(moods))
	}
	return stats, nil
}

// MoodTrend returns recorded check-ins over the trailing window, ascending
// by date. Dates without an entry are omitted, not zero-filled.
func (s *StatsService) MoodTrend(ctx context.Context, endDate time.Time, days int) ([]MoodTrendPoint, error) {
	start := model.WindowStart(model.DateOf(endDate), days)
	moods, err := s.moodRepo.ListInRange(ctx, start, endDate)
	if err != nil {
		return nil, err
	}
	trend := make([]MoodTrendPoint, 0, len(moods))
	for _, mood := range moods {
		trend = append(trend, MoodTrendPoint{Date: mood.Date, Rating: mood.Rating})
	}
	return trend, nil
}

// MoodRangeInDateRange returns min/max/count over an explicit window.
func (s *StatsService) MoodRangeInDateRange(ctx context.Context, start, end time.Time) (MoodRange, error) {
	minRating, maxRating, count, err := s.moodRepo.RangeSummary(ctx, start, end)
	if err != nil {
		return MoodRange{}, err
	}
	return MoodRange{MinMood: minRating, MaxMood: maxRating, MoodCount: count}, nil
}

// AverageMoodForLastDays returns the mean rating over the trailing window,
// 0 when empty.
func (s *StatsService) AverageMoodForLastDays(ctx context.Context, endDate time.Time, days int) (float64, error) {
	start := model.WindowStart(model.DateOf(endDate), days)
	return s.moodRepo.AverageInRange(ctx, start, endDate)
}

func rate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}
