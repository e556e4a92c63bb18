package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "commitd.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Rollover.Time != "00:05" {
		t.Errorf("rollover time = %q", cfg.Rollover.Time)
	}
	if cfg.Rollover.AutoDelete {
		t.Error("auto delete should default off")
	}
	if cfg.Rollover.AutoDeleteDays != 30 {
		t.Errorf("auto delete days = %d", cfg.Rollover.AutoDeleteDays)
	}
	if !cfg.Reminder.DailyEnabled || cfg.Reminder.DailyTime != "09:00" {
		t.Errorf("daily reminder = %+v", cfg.Reminder)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commitd.yaml")
	content := []byte(`
database:
  path: /tmp/other.db
rollover:
  time: "01:30"
  auto_delete: true
  auto_delete_days: 14
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "/tmp/other.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Rollover.Time != "01:30" {
		t.Errorf("rollover time = %q", cfg.Rollover.Time)
	}
	if !cfg.Rollover.AutoDelete || cfg.Rollover.AutoDeleteDays != 14 {
		t.Errorf("auto delete = %+v", cfg.Rollover)
	}
	// Untouched keys keep their defaults.
	if cfg.Reminder.MoodTime != "20:00" {
		t.Errorf("mood time = %q", cfg.Reminder.MoodTime)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "commitd.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("COMMITD_ROLLOVER_TIME", "02:45")
	t.Setenv("COMMITD_DATABASE_PATH", "env.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rollover.Time != "02:45" {
		t.Errorf("rollover time = %q, want env override", cfg.Rollover.Time)
	}
	if cfg.Database.Path != "env.db" {
		t.Errorf("database path = %q, want env override", cfg.Database.Path)
	}
}
