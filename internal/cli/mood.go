package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"commitd/internal/model"
)

func newMoodCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Record and inspect daily mood check-ins",
	}
	cmd.AddCommand(newMoodRecordCommand(app), newMoodShowCommand(app))
	return cmd
}

func newMoodRecordCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "record <rating>",
		Short: "Record today's mood (1-5), replacing an earlier check-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid rating %q", args[0])
			}
			if err := app.Moods.RecordMood(cmd.Context(), app.today(), rating); err != nil {
				return err
			}
			fmt.Printf("recorded mood %d for %s\n", rating, model.FormatDate(app.today()))
			return nil
		},
	}
}

func newMoodShowCommand(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recent mood check-ins",
		RunE: func(cmd *cobra.Command, args []string) error {
			moods, err := app.Moods.ListRecent(cmd.Context(), days)
			if err != nil {
				return err
			}
			if len(moods) == 0 {
				fmt.Println("no moods recorded yet")
				return nil
			}
			for _, mood := range moods {
				fmt.Printf("%s  %s (%d)\n", model.FormatDate(mood.Date), moodBar(mood.Rating), mood.Rating)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "number of recent check-ins to show")
	return cmd
}

func moodBar(rating int) string {
	bar := ""
	for i := 0; i < rating; i++ {
		bar += "★"
	}
	for i := rating; i < model.MaxMoodRating; i++ {
		bar += "☆"
	}
	return bar
}
