package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zumikiti/claude-code-work-analysis/pkg/db"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past analysis runs",
	Long:  `Lists previously recorded analysis runs from the local history database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer database.Close()

		fmt.Printf("Database: %s\n", database.Path())

		count, err := database.RunCount()
		if err != nil {
			return fmt.Errorf("failed to count runs: %w", err)
		}
		fmt.Printf("Total Runs: %d\n\n", count)

		if count == 0 {
			fmt.Println("No runs recorded yet. Run 'cwa analyze' first.")
			return nil
		}

		runs, err := database.RecentRuns(historyLimit)
		if err != nil {
			return fmt.Errorf("failed to load runs: %w", err)
		}

		fmt.Println("Recent Runs:")
		for _, run := range runs {
			scope := "all time"
			if run.FromDate != "" || run.ToDate != "" {
				scope = fmt.Sprintf("%s..%s", orAny(run.FromDate), orAny(run.ToDate))
			}
			if run.ProjectFilter != "" {
				scope += fmt.Sprintf(", project %q", run.ProjectFilter)
			}
			fmt.Printf("  #%-4d %s ago  %-30s %d sessions, %d messages, %.1fh\n",
				run.ID,
				formatAge(time.Since(run.CreatedAt)),
				scope,
				run.TotalSessions,
				run.TotalMessages,
				float64(run.WorkMinutes)/60,
			)
		}
		return nil
	},
}

func orAny(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	default:
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	}
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
