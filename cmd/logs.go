package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zumikiti/claude-code-work-analysis/pkg/logger"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Manage cwa logs",
	Long:  "View or manage cwa CLI logs",
}

var logsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print log directory path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(filepath.Dir(logger.Path()))
	},
}

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all log files",
	Run: func(cmd *cobra.Command, args []string) {
		files, err := filepath.Glob(filepath.Join(filepath.Dir(logger.Path()), "*.log*"))
		if err != nil {
			logger.Error("Failed to list logs: %v", err)
			os.Exit(1)
		}

		if len(files) == 0 {
			fmt.Println("No log files found")
			return
		}

		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil {
				logger.Warn("Failed to stat %s: %v", file, err)
				continue
			}
			fmt.Printf("%s (%d bytes)\n", filepath.Base(file), info.Size())
		}
	},
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all old log files (keeps current)",
	Run: func(cmd *cobra.Command, args []string) {
		// Rotated backups only, never the live cwa.log.
		files, err := filepath.Glob(filepath.Join(filepath.Dir(logger.Path()), "*.log*"))
		if err != nil {
			logger.Error("Failed to list logs: %v", err)
			os.Exit(1)
		}

		deletedCount := 0
		for _, file := range files {
			if file == logger.Path() {
				continue
			}
			if err := os.Remove(file); err != nil {
				logger.Warn("Failed to delete %s: %v", filepath.Base(file), err)
			} else {
				fmt.Printf("Deleted %s\n", filepath.Base(file))
				deletedCount++
			}
		}

		if deletedCount == 0 {
			fmt.Println("No old log files to delete")
			return
		}
		fmt.Printf("\nDeleted %d old log file(s)\n", deletedCount)
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsPathCmd)
	logsCmd.AddCommand(logsListCmd)
	logsCmd.AddCommand(logsClearCmd)
}
