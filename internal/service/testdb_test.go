package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"commitd/internal/repository"
)

// newTestRepos opens a fresh in-memory database and returns stores over it.
func newTestRepos(t *testing.T) (*repository.TaskRepository, *repository.MoodRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := repository.NewDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return repository.NewTaskRepository(db, nil), repository.NewMoodRepository(db, nil)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
