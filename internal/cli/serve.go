package cli

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"commitd/internal/model"
	"commitd/internal/notify"
	"commitd/internal/repository"
	"commitd/internal/service"
)

// Job names registered on the scheduler.
const (
	jobRollover     = "midnight_rollover"
	jobDailySummary = "daily_summary"
	jobMoodCheckIn  = "mood_check_in"
	jobTimeout      = 30 * time.Second
)

func newServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the rollover scheduler and reminder delivery",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app)
		},
	}
}

func runServe(ctx context.Context, app *App) error {
	scheduler := service.NewSchedulerService(app.Location)

	if err := scheduler.ScheduleDaily(jobRollover, app.Config.Rollover.Time, func() error {
		jobCtx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		return app.Rollover.RunDailyJob(jobCtx, time.Now().In(app.Location))
	}); err != nil {
		return err
	}

	var notifier notify.Notifier
	if app.Config.Telegram.Token != "" && app.Config.Telegram.ChatID != 0 {
		tg, err := notify.NewTelegramNotifier(app.Config.Telegram.Token, app.Config.Telegram.ChatID)
		if err != nil {
			return err
		}
		notifier = tg
	} else {
		log.Println("telegram not configured, reminders disabled")
	}

	if notifier != nil && app.Config.Reminder.DailyEnabled {
		if err := scheduler.ScheduleDaily(jobDailySummary, app.Config.Reminder.DailyTime, func() error {
			jobCtx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			summary, err := app.Reminders.DailySummary(jobCtx, app.today())
			if err != nil {
				return err
			}
			return notifier.Send(summary)
		}); err != nil {
			return err
		}
	}

	if notifier != nil && app.Config.Reminder.MoodEnabled {
		if err := scheduler.ScheduleDaily(jobMoodCheckIn, app.Config.Reminder.MoodTime, func() error {
			jobCtx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			prompt, ok, err := app.Reminders.MoodCheckInPrompt(jobCtx, app.today())
			if err != nil || !ok {
				return err
			}
			return notifier.Send(prompt)
		}); err != nil {
			return err
		}
	}

	scheduler.Start()
	defer scheduler.Stop()

	next, err := service.NextDailyTrigger(time.Now(), app.Location, app.Config.Rollover.Time)
	if err != nil {
		return err
	}
	log.Printf("commitd started; next rollover at %s", next.Format(time.RFC3339))

	go logChanges(ctx, app.Hub)

	<-ctx.Done()
	log.Println("Shutdown complete.")
	return nil
}

// logChanges drains store change notifications so operators can follow what
// the rollover and user edits touched.
func logChanges(ctx context.Context, hub *repository.Hub) {
	for ev := range hub.Watch(ctx) {
		switch ev.Type {
		case repository.EventTasksChanged:
			if ev.Date.IsZero() {
				log.Println("tasks changed (bulk)")
			} else {
				log.Printf("tasks changed for %s", model.FormatDate(ev.Date))
			}
		case repository.EventMoodsChanged:
			if ev.Date.IsZero() {
				log.Println("moods changed (bulk)")
			} else {
				log.Printf("mood recorded for %s", model.FormatDate(ev.Date))
			}
		}
	}
}
