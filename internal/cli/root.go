// Package cli wires the command surface: the long-running daemon plus
// one-shot commands for tasks, moods, statistics, rollover, and backup.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"commitd/internal/config"
	"commitd/internal/repository"
	"commitd/internal/service"
)

// App owns the storage handle and the services built on it. It is
// constructed once per process by the root command and passed by reference
// to subcommands; there is no ambient singleton state.
type App struct {
	Config config.Config
	DB     *gorm.DB
	Hub    *repository.Hub

	Tasks     *service.TaskService
	Moods     *service.MoodService
	Rollover  *service.RolloverService
	Stats     *service.StatsService
	Backup    *service.BackupService
	Reminders *service.ReminderService

	Location *time.Location
}

func newApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	hub := repository.NewHub(100 * time.Millisecond)
	taskRepo := repository.NewTaskRepository(db, hub)
	moodRepo := repository.NewMoodRepository(db, hub)

	return &App{
		Config:    cfg,
		DB:        db,
		Hub:       hub,
		Tasks:     service.NewTaskService(taskRepo),
		Moods:     service.NewMoodService(moodRepo),
		Rollover:  service.NewRolloverService(taskRepo, cfg.Rollover.AutoDelete, cfg.Rollover.AutoDeleteDays),
		Stats:     service.NewStatsService(taskRepo, moodRepo),
		Backup:    service.NewBackupService(taskRepo, moodRepo),
		Reminders: service.NewReminderService(taskRepo, moodRepo),
		Location:  time.Local,
	}, nil
}

func (a *App) close() {
	sqlDB, err := a.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// Today returns the current calendar date in the app's location.
func (a *App) today() time.Time {
	return time.Now().In(a.Location)
}

// NewRootCommand builds the commitd command tree.
func NewRootCommand() *cobra.Command {
	var configPath string
	app := &App{}

	root := &cobra.Command{
		Use:           "commitd",
		Short:         "Daily task and mood tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := newApp(configPath)
			if err != nil {
				return err
			}
			*app = *built
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "commitd.yaml", "path to config file")

	root.AddCommand(
		newServeCommand(app),
		newTaskCommand(app),
		newMoodCommand(app),
		newStatsCommand(app),
		newRolloverCommand(app),
		newBackupCommand(app),
	)
	return root
}
