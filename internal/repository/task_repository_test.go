package repository

import (
	"context"
	"testing"
	"time"

	"commitd/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustCreate(t *testing.T, repo *TaskRepository, title string, category model.Category, due time.Time, completed bool, completedAt *time.Time) *model.Task {
	t.Helper()
	task := &model.Task{
		Title:       title,
		Category:    category,
		DueDate:     due,
		Completed:   completed,
		CompletedAt: completedAt,
	}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}

func TestRolloverDayMovesIncompleteTasks(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db, nil)
	ctx := context.Background()

	today := date(2025, time.March, 10)
	yesterday := date(2025, time.March, 9)
	tomorrow := date(2025, time.March, 11)

	open := mustCreate(t, repo, "write report", model.CategoryWork, today, false, nil)
	doneAt := time.Now()
	done := mustCreate(t, repo, "call mom", model.CategoryRelationships, today, true, &doneAt)
	planned := mustCreate(t, repo, "gym", model.CategoryLife, tomorrow, false, nil)
	older := mustCreate(t, repo, "untouched", model.CategoryLife, yesterday, false, nil)

	if err := repo.RolloverDay(ctx, today, yesterday, tomorrow); err != nil {
		t.Fatalf("rollover: %v", err)
	}

	assertDueDate(t, repo, open.ID, yesterday)
	assertDueDate(t, repo, done.ID, today) // completed tasks keep their date
	assertDueDate(t, repo, planned.ID, today)
	assertDueDate(t, repo, older.ID, yesterday)
}

func TestRolloverDayIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db, nil)
	ctx := context.Background()

	today := date(2025, time.March, 10)
	yesterday := date(2025, time.March, 9)
	tomorrow := date(2025, time.March, 11)

	open := mustCreate(t, repo, "write report", model.CategoryWork, today, false, nil)
	planned := mustCreate(t, repo, "gym", model.CategoryLife, tomorrow, false, nil)

	if err := repo.RolloverDay(ctx, today, yesterday, tomorrow); err != nil {
		t.Fatalf("first rollover: %v", err)
	}
	if err := repo.RolloverDay(ctx, today, yesterday, tomorrow); err != nil {
		t.Fatalf("second rollover: %v", err)
	}

	// Same final state as a single run: the task moved to yesterday stays
	// there, the pre-planned task stays on today.
	assertDueDate(t, repo, open.ID, yesterday)
	assertDueDate(t, repo, planned.ID, today)
}

func TestDeleteCompletedBeforeUsesTimestampCutoff(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db, nil)
	ctx := context.Background()

	now := time.Now()
	due := date(2025, time.January, 15)

	oldAt := now.Add(-31 * 24 * time.Hour)
	freshAt := now.Add(-29 * 24 * time.Hour)
	old := mustCreate(t, repo, "stale", model.CategoryWork, due, true, &oldAt)
	fresh := mustCreate(t, repo, "recent", model.CategoryWork, due, true, &freshAt)
	openTask := mustCreate(t, repo, "never done", model.CategoryWork, due, false, nil)

	cutoff := now.Add(-30 * 24 * time.Hour)
	removed, err := repo.DeleteCompletedBefore(ctx, cutoff)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	if _, err := repo.FindByID(ctx, old.ID); !IsNotFound(err) {
		t.Errorf("stale task still present, err = %v", err)
	}
	if _, err := repo.FindByID(ctx, fresh.ID); err != nil {
		t.Errorf("recent task deleted: %v", err)
	}
	if _, err := repo.FindByID(ctx, openTask.ID); err != nil {
		t.Errorf("incomplete task deleted: %v", err)
	}
}

func TestCountsForDateAndCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db, nil)
	ctx := context.Background()

	day := date(2025, time.June, 1)
	doneAt := time.Now()
	mustCreate(t, repo, "a", model.CategoryWork, day, true, &doneAt)
	mustCreate(t, repo, "b", model.CategoryWork, day, false, nil)
	mustCreate(t, repo, "c", model.CategoryLife, day, false, nil)

	total, err := repo.CountForDate(ctx, day, false)
	if err != nil {
		t.Fatalf("count total: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	completed, err := repo.CountForDate(ctx, day, true)
	if err != nil {
		t.Fatalf("count completed: %v", err)
	}
	if completed != 1 {
		t.Errorf("completed = %d, want 1", completed)
	}

	workTotal, err := repo.CountInRangeByCategory(ctx, day, day, model.CategoryWork, false)
	if err != nil {
		t.Fatalf("count work: %v", err)
	}
	if workTotal != 2 {
		t.Errorf("work total = %d, want 2", workTotal)
	}

	counts, err := repo.CountsByCategory(ctx, day, day, false)
	if err != nil {
		t.Fatalf("counts by category: %v", err)
	}
	byCategory := make(map[model.Category]int64)
	for _, c := range counts {
		byCategory[c.Category] = c.Count
	}
	if byCategory[model.CategoryWork] != 2 || byCategory[model.CategoryLife] != 1 {
		t.Errorf("counts = %v", byCategory)
	}
}

func TestListForDateNormalizesInput(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db, nil)
	ctx := context.Background()

	noon := time.Date(2025, time.June, 1, 12, 30, 0, 0, time.UTC)
	mustCreate(t, repo, "a", model.CategoryLife, noon, false, nil)

	tasks, err := repo.ListForDate(ctx, noon)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len = %d, want 1", len(tasks))
	}
	if !tasks[0].DueDate.Equal(date(2025, time.June, 1)) {
		t.Errorf("due date = %v, want midnight UTC", tasks[0].DueDate)
	}
}

func assertDueDate(t *testing.T, repo *TaskRepository, id uint, want time.Time) {
	t.Helper()
	task, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find task %d: %v", id, err)
	}
	if !task.DueDate.Equal(want) {
		t.Errorf("task %d due date = %s, want %s",
			id, task.DueDate.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}
