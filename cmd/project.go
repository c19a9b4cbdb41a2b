package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/zumikiti/claude-code-work-analysis/pkg/config"
	"github.com/zumikiti/claude-code-work-analysis/pkg/filter"
)

var projectDays int

var projectCmd = &cobra.Command{
	Use:   "project NAME",
	Short: "Show statistics for one project",
	Long:  `Analyzes sessions whose project matches NAME and prints its statistics and topics.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		f := filter.ForProject(name)
		if projectDays > 0 {
			f = f.And(filter.LastDays(projectDays))
		}

		analysis, err := runAnalysis(cfg, f)
		if err != nil {
			return err
		}

		if analysis.TotalSessions == 0 {
			fmt.Printf("No sessions found for project %q\n", name)
			return nil
		}

		names := make([]string, 0, len(analysis.ProjectStats))
		for project := range analysis.ProjectStats {
			names = append(names, project)
		}
		sort.Strings(names)

		for _, project := range names {
			stats := analysis.ProjectStats[project]
			fmt.Printf("=== %s ===\n", stats.ProjectName)
			fmt.Printf("Sessions:  %d\n", stats.TotalSessions)
			fmt.Printf("Messages:  %s\n", humanize.Comma(int64(stats.TotalMessages)))
			fmt.Printf("Work Time: %.1f hours\n", stats.WorkTime.Hours())
			if stats.MostActiveDay != nil {
				fmt.Printf("Most Active Day: %s\n", stats.MostActiveDay.Local().Format("2006-01-02"))
			}

			if len(stats.ActivityTypes) > 0 {
				fmt.Println("\nActivities:")
				activities := make([]string, 0, len(stats.ActivityTypes))
				for activity := range stats.ActivityTypes {
					activities = append(activities, activity)
				}
				sort.Slice(activities, func(i, j int) bool {
					if stats.ActivityTypes[activities[i]] != stats.ActivityTypes[activities[j]] {
						return stats.ActivityTypes[activities[i]] > stats.ActivityTypes[activities[j]]
					}
					return activities[i] < activities[j]
				})
				for _, activity := range activities {
					fmt.Printf("  %-14s %d\n", activity, stats.ActivityTypes[activity])
				}
			}

			if ta := stats.TopicAnalysis; ta != nil {
				if len(ta.PrimaryTopics) > 0 {
					fmt.Printf("\nPrimary Topics: %s\n", strings.Join(ta.PrimaryTopics, ", "))
				}
				if len(ta.TechnicalStack) > 0 {
					fmt.Printf("Technical Stack: %s\n", strings.Join(ta.TechnicalStack, ", "))
				}
				if len(ta.SolutionPatterns) > 0 {
					fmt.Println("\nSolution Patterns:")
					for _, pattern := range ta.SolutionPatterns {
						fmt.Printf("  - %s\n", pattern)
					}
				}
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	projectCmd.Flags().IntVar(&projectDays, "days", 0, "only include the last N days")
	rootCmd.AddCommand(projectCmd)
}
