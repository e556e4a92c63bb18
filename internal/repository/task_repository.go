package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"commitd/internal/model"
)

// TaskRepository handles CRUD and aggregate queries for tasks.
type TaskRepository struct {
	db  *gorm.DB
	hub *Hub
}

func NewTaskRepository(db *gorm.DB, hub *Hub) *TaskRepository {
	return &TaskRepository{db: db, hub: hub}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	task.DueDate = model.DateOf(task.DueDate)
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	r.hub.Publish(Event{Type: EventTasksChanged, Date: task.DueDate})
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) ListForDate(ctx context.Context, date time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("due_date = ?", model.DateOf(date)).
		Order("id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListForDateByCategory(ctx context.Context, date time.Time, category model.Category) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("due_date = ? AND category = ?", model.DateOf(date), category).
		Order("id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListInRange(ctx context.Context, start, end time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("due_date BETWEEN ? AND ?", model.DateOf(start), model.DateOf(end)).
		Order("due_date ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	task.DueDate = model.DateOf(task.DueDate)
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	r.hub.Publish(Event{Type: EventTasksChanged, Date: task.DueDate})
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, taskID uint) error {
	task, err := r.FindByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("find task: %w", err)
	}
	if err := r.db.WithContext(ctx).Delete(&model.Task{}, taskID).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	r.hub.Publish(Event{Type: EventTasksChanged, Date: task.DueDate})
	return nil
}

// RolloverDay re-dates incomplete tasks in a single transaction: tasks still
// due `today` move back to `yesterday` (they were not finished before the day
// ended) and tasks pre-planned for `tomorrow` move up to `today`. Completed
// tasks keep their historical due date. The two updates match disjoint date
// predicates and commit atomically, so readers never observe a half-applied
// rollover.
//
// The rollover log row committed in the same transaction makes the operation
// idempotent per day: without it a repeat run would push the tasks just
// pulled up from tomorrow back to yesterday, since they now match the
// today+incomplete predicate. If the transaction aborts, the marker aborts
// with it and a retry applies everything from scratch.
func (r *TaskRepository) RolloverDay(ctx context.Context, today, yesterday, tomorrow time.Time) error {
	today = model.DateOf(today)
	yesterday = model.DateOf(yesterday)
	tomorrow = model.DateOf(tomorrow)

	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ran int64
		if err := tx.Model(&model.RolloverLog{}).
			Where("day = ?", today).
			Count(&ran).Error; err != nil {
			return fmt.Errorf("check rollover log: %w", err)
		}
		if ran > 0 {
			return nil
		}

		if err := tx.Model(&model.Task{}).
			Where("due_date = ? AND completed = ?", today, false).
			Update("due_date", yesterday).Error; err != nil {
			return fmt.Errorf("rollover today: %w", err)
		}
		if err := tx.Model(&model.Task{}).
			Where("due_date = ? AND completed = ?", tomorrow, false).
			Update("due_date", today).Error; err != nil {
			return fmt.Errorf("rollover tomorrow: %w", err)
		}
		if err := tx.Create(&model.RolloverLog{Day: today, RanAt: time.Now()}).Error; err != nil {
			return fmt.Errorf("mark rollover: %w", err)
		}
		applied = true
		return nil
	})
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	r.hub.Publish(Event{Type: EventTasksChanged, Date: yesterday})
	r.hub.Publish(Event{Type: EventTasksChanged, Date: today})
	return nil
}

// DeleteCompletedBefore removes completed tasks whose completion timestamp is
// older than cutoff. The comparison is on the timestamp, not the date.
func (r *TaskRepository) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("completed = ? AND completed_at < ?", true, cutoff).
		Delete(&model.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete old completed tasks: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		r.hub.Publish(Event{Type: EventTasksChanged})
	}
	return res.RowsAffected, nil
}

func (r *TaskRepository) CountForDate(ctx context.Context, date time.Time, completedOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("due_date = ?", model.DateOf(date))
	if completedOnly {
		q = q.Where("completed = ?", true)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TaskRepository) CountInRangeByCategory(ctx context.Context, start, end time.Time, category model.Category, completedOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("due_date BETWEEN ? AND ? AND category = ?",
			model.DateOf(start), model.DateOf(end), category)
	if completedOnly {
		q = q.Where("completed = ?", true)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CategoryCount pairs a category with a task count for GROUP BY queries.
type CategoryCount struct {
	Category model.Category
	Count    int64
}

func (r *TaskRepository) CountsByCategory(ctx context.Context, start, end time.Time, completedOnly bool) ([]CategoryCount, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("category, COUNT(*) as count").
		Where("due_date BETWEEN ? AND ?", model.DateOf(start), model.DateOf(end))
	if completedOnly {
		q = q.Where("completed = ?", true)
	}
	var counts []CategoryCount
	if err := q.Group("category").Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *TaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Order("due_date ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// DeleteAll removes every task. Used by the bulk data-clear operation.
func (r *TaskRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	r.hub.Publish(Event{Type: EventTasksChanged})
	return nil
}
