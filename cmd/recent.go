package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zumikiti/claude-code-work-analysis/pkg/config"
	"github.com/zumikiti/claude-code-work-analysis/pkg/filter"
	"github.com/zumikiti/claude-code-work-analysis/pkg/scanner"
)

var recentDays int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Summarize recent work activity",
	Long:  `Prints a quick summary of sessions from the last N days across all projects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		analysis, err := runAnalysis(cfg, filter.LastDays(recentDays))
		if err != nil {
			return err
		}

		fmt.Printf("=== Last %d Days ===\n\n", recentDays)
		fmt.Printf("Sessions:  %d\n", analysis.TotalSessions)
		fmt.Printf("Messages:  %d\n", analysis.TotalMessages)
		fmt.Printf("Work Time: %.1f hours\n", analysis.TotalWorkTime.Hours())
		fmt.Printf("Projects:  %d\n", len(analysis.ProjectStats))

		if analysis.TotalSessions == 0 {
			return nil
		}

		fmt.Println("\nRecent Sessions:")
		shown := 0
		for i := len(analysis.Sessions) - 1; i >= 0 && shown < 10; i-- {
			session := &analysis.Sessions[i]
			fmt.Printf("  %s  %-24s %3d msgs  %4.0f min",
				session.StartTime.Local().Format("01-02 15:04"),
				scanner.ProjectName(session.ProjectPath),
				session.TotalMessages,
				session.Duration().Minutes(),
			)
			if summary := session.Summary; summary != nil && len(summary.MainTopics) > 0 {
				topics := summary.MainTopics
				if len(topics) > 3 {
					topics = topics[:3]
				}
				fmt.Printf("  [%s]", strings.Join(topics, ", "))
			}
			fmt.Println()
			shown++
		}

		if cs := analysis.ConversationSummary; cs != nil && len(cs.OverallThemes) > 0 {
			fmt.Printf("\nThemes: %s\n", strings.Join(cs.OverallThemes, "; "))
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVar(&recentDays, "days", 7, "number of days to look back")
	rootCmd.AddCommand(recentCmd)
}
