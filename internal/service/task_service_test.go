package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"commitd/internal/model"
)

func TestAddTaskValidation(t *testing.T) {
	taskRepo, _ := newTestRepos(t)
	svc := NewTaskService(taskRepo)
	ctx := context.Background()
	day := date(2025, time.March, 10)

	if _, err := svc.AddTask(ctx, "", model.CategoryLife, day); !errors.Is(err, ErrValidation) {
		t.Errorf("empty title err = %v, want ErrValidation", err)
	}
	if _, err := svc.AddTask(ctx, "x", model.Category("hobbies"), day); !errors.Is(err, ErrValidation) {
		t.Errorf("bad category err = %v, want ErrValidation", err)
	}

	task, err := svc.AddTask(ctx, "read book", model.CategoryLife, day)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.ID == 0 {
		t.Error("store did not assign an id")
	}
	if task.Completed || task.CompletedAt != nil {
		t.Error("new task must start incomplete with no completedAt")
	}
}

func TestToggleCompletionKeepsInvariant(t *testing.T) {
	taskRepo, _ := newTestRepos(t)
	svc := NewTaskService(taskRepo)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, "water plants", model.CategoryLife, date(2025, time.March, 10))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	now := time.Now()
	toggled, err := svc.ToggleCompletion(ctx, task.ID, now)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !toggled.Completed {
		t.Error("task not completed after toggle")
	}
	if toggled.CompletedAt == nil {
		t.Fatal("completedAt nil while completed")
	}
	if !toggled.CompletedAt.Equal(now) {
		t.Errorf("completedAt = %v, want %v", toggled.CompletedAt, now)
	}

	back, err := svc.ToggleCompletion(ctx, task.ID, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if back.Completed {
		t.Error("task still completed after second toggle")
	}
	if back.CompletedAt != nil {
		t.Error("completedAt not cleared on uncomplete")
	}

	// The invariant holds in storage too, not just on the returned copy.
	stored, err := svc.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Completed != (stored.CompletedAt != nil) {
		t.Errorf("stored task violates invariant: completed=%v completedAt=%v",
			stored.Completed, stored.CompletedAt)
	}
}

func TestMoveToTomorrow(t *testing.T) {
	taskRepo, _ := newTestRepos(t)
	svc := NewTaskService(taskRepo)
	ctx := context.Background()

	today := date(2025, time.January, 31)
	task, err := svc.AddTask(ctx, "pay rent", model.CategoryLife, today)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	moved, err := svc.MoveToTomorrow(ctx, task.ID, today)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	want := date(2025, time.February, 1)
	if !moved.DueDate.Equal(want) {
		t.Errorf("due date = %v, want %v (month boundary)", moved.DueDate, want)
	}
}
