package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"commitd/internal/service"
)

func newRolloverCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Inspect and trigger the daily rollover",
	}
	cmd.AddCommand(newRolloverRunCommand(app), newRolloverNextCommand(app))
	return cmd
}

func newRolloverRunCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the rollover immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Rollover.RunDailyJob(cmd.Context(), time.Now().In(app.Location)); err != nil {
				return err
			}
			fmt.Println("rollover complete")
			return nil
		},
	}
}

func newRolloverNextCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next scheduled rollover time",
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := service.NextDailyTrigger(time.Now(), app.Location, app.Config.Rollover.Time)
			if err != nil {
				return err
			}
			fmt.Printf("next rollover at %s\n", next.Format(time.RFC3339))
			return nil
		},
	}
}
