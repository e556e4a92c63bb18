package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"commitd/internal/model"
	"commitd/internal/repository"
)

// ReminderService builds human-readable summaries for daily notifications.
type ReminderService struct {
	taskRepo *repository.TaskRepository
	moodRepo *repository.MoodRepository
}

func NewReminderService(taskRepo *repository.TaskRepository, moodRepo *repository.MoodRepository) *ReminderService {
	return &ReminderService{taskRepo: taskRepo, moodRepo: moodRepo}
}

// DailySummary renders the morning report for the given date: open tasks
// first, grouped under a completed-count footer.
func (s *ReminderService) DailySummary(ctx context.Context, date time.Time) (string, error) {
	tasks, err := s.taskRepo.ListForDate(ctx, date)
	if err != nil {
		return "", err
	}

	var open, done []model.Task
	for _, task := range tasks {
		if task.Completed {
			done = append(done, task)
		} else {
			open = append(open, task)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		if open[i].Category != open[j].Category {
			return open[i].Category < open[j].Category
		}
		return open[i].ID < open[j].ID
	})

	var builder strings.Builder
	builder.WriteString("📋 <b>Today's plan</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", model.FormatDate(model.DateOf(date))))

	if len(open) == 0 {
		builder.WriteString("— nothing left to do\n")
	} else {
		for _, task := range open {
			builder.WriteString(formatTaskLine(task))
		}
	}

	if len(done) > 0 {
		builder.WriteString(fmt.Sprintf("\n✅ %d already done", len(done)))
	}

	return strings.TrimSpace(builder.String()), nil
}

// MoodCheckInPrompt returns the evening check-in message, or ok=false when a
// mood is already recorded for the date and no prompt should be sent.
func (s *ReminderService) MoodCheckInPrompt(ctx context.Context, date time.Time) (string, bool, error) {
	_, err := s.moodRepo.ForDate(ctx, date)
	switch {
	case err == nil:
		return "", false, nil
	case repository.IsNotFound(err):
		return "🌙 How was your day? Record your mood (1-5) with: commitd mood record <rating>", true, nil
	default:
		return "", false, err
	}
}

func formatTaskLine(task model.Task) string {
	title := html.EscapeString(strings.TrimSpace(task.Title))
	return fmt.Sprintf("🔸 %s <i>(%s)</i>\n", title, task.Category)
}
