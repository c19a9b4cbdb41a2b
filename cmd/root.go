package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zumikiti/claude-code-work-analysis/pkg/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cwa",
	Short: "Analyze your Claude Code work logs",
	Long: `cwa reads Claude Code JSONL transcripts from ~/.claude/projects,
segments them into work sessions, and produces reports on projects,
activities, and conversation themes.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
		logger.SetVerbose(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "echo log output to stderr")
}
