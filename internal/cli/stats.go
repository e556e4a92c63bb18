package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"commitd/internal/model"
)

func newStatsCommand(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion and mood statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			end := app.today()
			start := model.WindowStart(end, days)

			fmt.Printf("Statistics for %s .. %s\n\n", model.FormatDate(start), model.FormatDate(end))

			today, err := app.Stats.TaskStatistics(ctx, end)
			if err != nil {
				return err
			}
			fmt.Printf("Today: %d/%d done (%.0f%%)\n\n",
				today.CompletedCount, today.TotalCount, today.CompletionRate*100)

			byCategory, err := app.Stats.CategoryStatisticsInRange(ctx, start, end)
			if err != nil {
				return err
			}
			fmt.Println("By category:")
			for _, category := range model.AllCategories() {
				stats := byCategory[category]
				fmt.Printf("  %-14s %d/%d (%.0f%%)\n",
					category, stats.CompletedCount, stats.TotalCount, stats.CompletionRate*100)
			}

			moods, err := app.Stats.MoodStatistics(ctx, end, days)
			if err != nil {
				return err
			}
			fmt.Printf("\nMood: %.1f average over %d check-ins\n", moods.AverageRating, moods.TotalEntries)
			for rating := model.MinMoodRating; rating <= model.MaxMoodRating; rating++ {
				fmt.Printf("  %d: %d\n", rating, moods.Distribution[rating])
			}

			trend, err := app.Stats.MoodTrend(ctx, end, days)
			if err != nil {
				return err
			}
			if len(trend) > 0 {
				fmt.Println("\nTrend:")
				for _, point := range trend {
					fmt.Printf("  %s  %d\n", model.FormatDate(point.Date), point.Rating)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "trailing window in days (7 or 30)")
	return cmd
}
