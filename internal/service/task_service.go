package service

import (
	"context"
	"fmt"
	"time"

	"commitd/internal/model"
	"commitd/internal/repository"
)

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// AddTask creates a task due on the given date.
func (s *TaskService) AddTask(ctx context.Context, title string, category model.Category, dueDate time.Time) (*model.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if _, err := model.ParseCategory(string(category)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	task := model.Task{
		Title:    title,
		Category: category,
		DueDate:  model.DateOf(dueDate),
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return &task, nil
}

func (s *TaskService) ListForDate(ctx context.Context, date time.Time) ([]model.Task, error) {
	return s.taskRepo.ListForDate(ctx, date)
}

func (s *TaskService) ListForDateByCategory(ctx context.Context, date time.Time, category model.Category) ([]model.Task, error) {
	return s.taskRepo.ListForDateByCategory(ctx, date, category)
}

func (s *TaskService) GetTask(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, taskID)
}

// ToggleCompletion flips a task's completed flag. CompletedAt is set exactly
// when the flag goes false to true and cleared on the way back, so the two
// fields never disagree. The task's current state is re-read from storage.
func (s *TaskService) ToggleCompletion(ctx context.Context, taskID uint, now time.Time) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.Completed {
		task.Completed = false
		task.CompletedAt = nil
	} else {
		task.Completed = true
		completedAt := now
		task.CompletedAt = &completedAt
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return task, nil
}

// MoveToTomorrow re-dates a task to the day after the given date.
func (s *TaskService) MoveToTomorrow(ctx context.Context, taskID uint, today time.Time) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task.DueDate = model.AddDays(today, 1)
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	return s.taskRepo.Delete(ctx, taskID)
}
