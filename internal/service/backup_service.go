package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"commitd/internal/model"
	"commitd/internal/repository"
)

// BackupVersion is the current backup file format version.
const BackupVersion = 1

// BackupData is the JSON backup file layout.
type BackupData struct {
	Version    int          `json:"version"`
	ExportDate time.Time    `json:"exportDate"`
	Tasks      []TaskBackup `json:"tasks"`
	Moods      []MoodBackup `json:"moods"`
}

// TaskBackup is one task record in a backup file. Dates travel as
// YYYY-MM-DD strings; the completion timestamp as an RFC 3339 instant.
type TaskBackup struct {
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	DueDate     string     `json:"dueDate"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// MoodBackup is one mood record in a backup file.
type MoodBackup struct {
	Date   string `json:"date"`
	Rating int    `json:"rating"`
}

// ImportResult reports how much of a backup file was actually imported.
type ImportResult struct {
	TasksImported int
	MoodsImported int
	TotalTasks    int
	TotalMoods    int
}

// BackupService exports, imports, and clears the full data set.
type BackupService struct {
	taskRepo *repository.TaskRepository
	moodRepo *repository.MoodRepository
	now      func() time.Time
}

func NewBackupService(taskRepo *repository.TaskRepository, moodRepo *repository.MoodRepository) *BackupService {
	return &BackupService{taskRepo: taskRepo, moodRepo: moodRepo, now: time.Now}
}

// Export writes every task and mood to a JSON file at path.
func (s *BackupService) Export(ctx context.Context, path string) error {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	moods, err := s.moodRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	backup := BackupData{
		Version:    BackupVersion,
		ExportDate: s.now().UTC(),
		Tasks:      make([]TaskBackup, 0, len(tasks)),
		Moods:      make([]MoodBackup, 0, len(moods)),
	}
	for _, task := range tasks {
		backup.Tasks = append(backup.Tasks, TaskBackup{
			Title:       task.Title,
			Category:    task.Category.String(),
			DueDate:     model.FormatDate(task.DueDate),
			Completed:   task.Completed,
			CompletedAt: task.CompletedAt,
		})
	}
	for _, mood := range moods {
		backup.Moods = append(backup.Moods, MoodBackup{
			Date:   model.FormatDate(mood.Date),
			Rating: mood.Rating,
		})
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrResourceUnavailable, path, err)
	}
	return nil
}

// Import reads a backup file and inserts its records additively. Each record
// is handled independently: one that fails to parse or validate is skipped
// silently and excluded from the imported counts. Existing data is never
// replaced, so re-importing the same file creates duplicates.
func (s *BackupService) Import(ctx context.Context, path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: read %s: %v", ErrResourceUnavailable, path, err)
	}

	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return ImportResult{}, fmt.Errorf("%w: parse backup: %v", ErrValidation, err)
	}

	result := ImportResult{
		TotalTasks: len(backup.Tasks),
		TotalMoods: len(backup.Moods),
	}

	for _, record := range backup.Tasks {
		task, err := taskFromBackup(record)
		if err != nil {
			continue
		}
		if err := s.taskRepo.Create(ctx, task); err != nil {
			continue
		}
		result.TasksImported++
	}

	for _, record := range backup.Moods {
		if !model.ValidRating(record.Rating) {
			continue
		}
		date, err := model.ParseDate(record.Date)
		if err != nil {
			continue
		}
		mood := model.DailyMood{Date: date, Rating: record.Rating}
		if err := s.moodRepo.Upsert(ctx, &mood); err != nil {
			continue
		}
		result.MoodsImported++
	}

	return result, nil
}

func taskFromBackup(record TaskBackup) (*model.Task, error) {
	if record.Title == "" {
		return nil, fmt.Errorf("empty title")
	}
	category, err := model.ParseCategory(record.Category)
	if err != nil {
		return nil, err
	}
	dueDate, err := model.ParseDate(record.DueDate)
	if err != nil {
		return nil, err
	}
	if record.Completed != (record.CompletedAt != nil) {
		return nil, fmt.Errorf("completed flag and completedAt disagree")
	}
	return &model.Task{
		Title:       record.Title,
		Category:    category,
		DueDate:     dueDate,
		Completed:   record.Completed,
		CompletedAt: record.CompletedAt,
	}, nil
}

// ClearAll deletes every task and mood record.
func (s *BackupService) ClearAll(ctx context.Context) error {
	if err := s.taskRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if err := s.moodRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return nil
}
