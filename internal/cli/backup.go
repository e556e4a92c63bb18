package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newBackupCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export, import, or clear all data",
	}
	cmd.AddCommand(
		newBackupExportCommand(app),
		newBackupImportCommand(app),
		newBackupClearCommand(app),
	)
	return cmd
}

func newBackupExportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export all tasks and moods to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Backup.Export(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("exported to %s\n", args[0])
			return nil
		},
	}
}

func newBackupImportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks and moods from a JSON backup (additive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Backup.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("imported %d/%d tasks and %d/%d moods\n",
				result.TasksImported, result.TotalTasks,
				result.MoodsImported, result.TotalMoods)
			return nil
		},
	}
}

func newBackupClearCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks and moods",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm("This deletes all tasks and moods. Continue? [y/N] ") {
				fmt.Println("aborted")
				return nil
			}
			if err := app.Backup.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("all data cleared")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
