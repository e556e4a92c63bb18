package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"commitd/internal/model"
	"commitd/internal/repository"
)

// RolloverService advances the task board once per local day: tasks left
// incomplete on the closing day slide back to "yesterday", tasks pre-planned
// for "tomorrow" become today's tasks, and old completed tasks are swept
// away when auto-delete is on.
type RolloverService struct {
	taskRepo       *repository.TaskRepository
	autoDelete     bool
	autoDeleteDays int
}

func NewRolloverService(taskRepo *repository.TaskRepository, autoDelete bool, autoDeleteDays int) *RolloverService {
	if autoDeleteDays <= 0 {
		autoDeleteDays = 30
	}
	return &RolloverService{
		taskRepo:       taskRepo,
		autoDelete:     autoDelete,
		autoDeleteDays: autoDeleteDays,
	}
}

// PerformRollover applies the two re-dating effects atomically. Either both
// apply or neither does; on failure the caller retries the whole invocation
// later. The operation is idempotent per day: a second run with the same
// dates matches no rows.
func (s *RolloverService) PerformRollover(ctx context.Context, today, yesterday, tomorrow time.Time) error {
	if err := s.taskRepo.RolloverDay(ctx, today, yesterday, tomorrow); err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return nil
}

// CleanupOldCompletedTasks deletes completed tasks whose completion
// timestamp is older than retentionDays before now. The cutoff is a
// timestamp comparison, not a date comparison. Irreversible.
func (s *RolloverService) CleanupOldCompletedTasks(ctx context.Context, now time.Time, retentionDays int) error {
	cutoff := now.Add(-time.Duration(retentionDays) * 24 * time.Hour)
	removed, err := s.taskRepo.DeleteCompletedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if removed > 0 {
		log.Printf("rollover: cleaned up %d completed tasks older than %d days", removed, retentionDays)
	}
	return nil
}

// RunDailyJob computes the date triple at execution time, performs the
// rollover, and runs the cleanup sweep when auto-delete is enabled.
func (s *RolloverService) RunDailyJob(ctx context.Context, now time.Time) error {
	today := model.DateOf(now)
	yesterday := model.AddDays(today, -1)
	tomorrow := model.AddDays(today, 1)

	if err := s.PerformRollover(ctx, today, yesterday, tomorrow); err != nil {
		return err
	}

	if s.autoDelete {
		if err := s.CleanupOldCompletedTasks(ctx, now, s.autoDeleteDays); err != nil {
			return err
		}
	}
	return nil
}
