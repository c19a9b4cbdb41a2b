package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zumikiti/claude-code-work-analysis/pkg/analyzer"
	"github.com/zumikiti/claude-code-work-analysis/pkg/config"
	"github.com/zumikiti/claude-code-work-analysis/pkg/db"
	"github.com/zumikiti/claude-code-work-analysis/pkg/filter"
	"github.com/zumikiti/claude-code-work-analysis/pkg/logger"
	"github.com/zumikiti/claude-code-work-analysis/pkg/parser"
	"github.com/zumikiti/claude-code-work-analysis/pkg/report"
	"github.com/zumikiti/claude-code-work-analysis/pkg/scanner"
	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

var analyzeFlags struct {
	from        string
	to          string
	project     string
	format      string
	output      string
	gapHours    float64
	minMessages int
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze work logs and generate a report",
	Long: `Scans all Claude Code transcripts, segments them into work sessions,
and writes a markdown or JSON report to stdout or a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("gap-hours") {
			cfg.SessionGap = time.Duration(analyzeFlags.gapHours * float64(time.Hour))
		}
		if cmd.Flags().Changed("min-messages") {
			cfg.MinSessionMessages = analyzeFlags.minMessages
		}

		f, err := buildFilter(analyzeFlags.from, analyzeFlags.to, analyzeFlags.project)
		if err != nil {
			return err
		}

		analysis, err := runAnalysis(cfg, f)
		if err != nil {
			return err
		}

		gen := report.New()
		var out string
		switch analyzeFlags.format {
		case "markdown", "md":
			out = gen.Markdown(analysis)
		case "json":
			out, err = gen.JSON(analysis)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format: %s (expected markdown or json)", analyzeFlags.format)
		}

		if analyzeFlags.output != "" {
			if err := os.WriteFile(analyzeFlags.output, []byte(out), 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("Report written to %s\n", analyzeFlags.output)
		} else {
			fmt.Print(out)
		}

		recordRun(analysis, analyzeFlags.from, analyzeFlags.to, analyzeFlags.project, analyzeFlags.format)
		return nil
	},
}

// runAnalysis executes the scan/parse/filter/analyze pipeline.
func runAnalysis(cfg *config.Config, f filter.Filter) (*types.WorkAnalysis, error) {
	files, err := scanner.ScanProjects(cfg.ProjectsDir())
	if err != nil {
		return nil, fmt.Errorf("failed to scan projects: %w", err)
	}
	logger.Info("Found %d transcript file(s)", len(files))

	entries := f.Apply(parser.ParseFiles(files))
	logger.Info("Analyzing %d entries", len(entries))

	wa := analyzer.New().
		WithSessionGap(cfg.SessionGap).
		WithMinMessages(cfg.MinSessionMessages)
	return wa.Analyze(entries), nil
}

// buildFilter parses optional YYYY-MM-DD bounds into an entry filter. The
// end date is inclusive.
func buildFilter(from, to, project string) (filter.Filter, error) {
	f := filter.ForProject(project)
	if from != "" {
		parsed, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return filter.Filter{}, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		f.From = &parsed
	}
	if to != "" {
		parsed, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return filter.Filter{}, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		end := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &end
	}
	return f, nil
}

// recordRun appends this invocation to the run history. History failures
// never fail the analysis itself.
func recordRun(analysis *types.WorkAnalysis, from, to, project, format string) {
	database, err := db.Open()
	if err != nil {
		logger.Warn("Failed to open history database: %v", err)
		return
	}
	defer database.Close()

	run := db.Run{
		FromDate:      from,
		ToDate:        to,
		ProjectFilter: project,
		TotalSessions: analysis.TotalSessions,
		TotalMessages: analysis.TotalMessages,
		WorkMinutes:   int64(analysis.TotalWorkTime.Minutes()),
		ProjectCount:  len(analysis.ProjectStats),
		Format:        format,
	}
	if err := database.RecordRun(&run); err != nil {
		logger.Warn("Failed to record run: %v", err)
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlags.from, "from", "", "start date (YYYY-MM-DD)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.to, "to", "", "end date, inclusive (YYYY-MM-DD)")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.project, "project", "p", "", "only include projects matching this substring")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.format, "format", "f", "markdown", "output format: markdown or json")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.output, "output", "o", "", "write the report to this file instead of stdout")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.gapHours, "gap-hours", 2, "hours of silence that start a new session")
	analyzeCmd.Flags().IntVar(&analyzeFlags.minMessages, "min-messages", 3, "discard sessions with fewer messages")
	rootCmd.AddCommand(analyzeCmd)
}
