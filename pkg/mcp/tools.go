package mcp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zumikiti/claude-code-work-analysis/pkg/analyzer"
	"github.com/zumikiti/claude-code-work-analysis/pkg/config"
	"github.com/zumikiti/claude-code-work-analysis/pkg/filter"
	"github.com/zumikiti/claude-code-work-analysis/pkg/parser"
	"github.com/zumikiti/claude-code-work-analysis/pkg/report"
	"github.com/zumikiti/claude-code-work-analysis/pkg/scanner"
	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

// Service runs the scan/parse/filter/analyze pipeline for tools.
type Service struct {
	cfg *config.Config
}

// NewService creates a Service over the configured Claude directory.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// Analyze runs the full pipeline with the given filter.
func (s *Service) Analyze(f filter.Filter) (*types.WorkAnalysis, error) {
	files, err := scanner.ScanProjects(s.cfg.ProjectsDir())
	if err != nil {
		return nil, fmt.Errorf("failed to scan projects: %w", err)
	}

	entries := f.Apply(parser.ParseFiles(files))

	wa := analyzer.New().
		WithSessionGap(s.cfg.SessionGap).
		WithMinMessages(s.cfg.MinSessionMessages)
	return wa.Analyze(entries), nil
}

// AnalyzeWorkPeriodTool implements the analyze_work_period tool.
type AnalyzeWorkPeriodTool struct {
	service *Service
}

func NewAnalyzeWorkPeriodTool(service *Service) *AnalyzeWorkPeriodTool {
	return &AnalyzeWorkPeriodTool{service: service}
}

func (t *AnalyzeWorkPeriodTool) Name() string {
	return "analyze_work_period"
}

func (t *AnalyzeWorkPeriodTool) Description() string {
	return "Analyze Claude Code work logs for a date range and return a full report with sessions, projects and conversation themes"
}

func (t *AnalyzeWorkPeriodTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"from": {
				"type": "string",
				"description": "Start date in YYYY-MM-DD format"
			},
			"to": {
				"type": "string",
				"description": "End date in YYYY-MM-DD format"
			},
			"project": {
				"type": "string",
				"description": "Only include projects matching this substring"
			},
			"format": {
				"type": "string",
				"enum": ["markdown", "json"],
				"description": "Report output format",
				"default": "markdown"
			}
		}
	}`)
}

func (t *AnalyzeWorkPeriodTool) Execute(args map[string]interface{}) (interface{}, error) {
	f := filter.ForProject(getString(args, "project"))

	if from := getString(args, "from"); from != "" {
		parsed, err := parseDate(from)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", err)
		}
		f.From = &parsed
	}
	if to := getString(args, "to"); to != "" {
		parsed, err := parseDate(to)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", err)
		}
		// Inclusive end of day.
		end := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &end
	}

	analysis, err := t.service.Analyze(f)
	if err != nil {
		return nil, err
	}

	gen := report.New()
	if getString(args, "format") == "json" {
		return gen.JSON(analysis)
	}
	return gen.Markdown(analysis), nil
}

// GetProjectStatsTool implements the get_project_stats tool.
type GetProjectStatsTool struct {
	service *Service
}

func NewGetProjectStatsTool(service *Service) *GetProjectStatsTool {
	return &GetProjectStatsTool{service: service}
}

func (t *GetProjectStatsTool) Name() string {
	return "get_project_stats"
}

func (t *GetProjectStatsTool) Description() string {
	return "Get per-project statistics including session counts, work time, activity breakdown and topic analysis"
}

func (t *GetProjectStatsTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"project": {
				"type": "string",
				"description": "Project name (can be a partial match)"
			},
			"days": {
				"type": "integer",
				"description": "Only include sessions from the last N days",
				"minimum": 1
			}
		},
		"required": ["project"]
	}`)
}

func (t *GetProjectStatsTool) Execute(args map[string]interface{}) (interface{}, error) {
	project := getString(args, "project")
	if project == "" {
		return nil, fmt.Errorf("project is required")
	}

	f := filter.ForProject(project)
	if days := getInt(args, "days"); days > 0 {
		f = f.And(filter.LastDays(days))
	}

	analysis, err := t.service.Analyze(f)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"project":         project,
		"total_sessions":  analysis.TotalSessions,
		"total_messages":  analysis.TotalMessages,
		"work_time_hours": analysis.TotalWorkTime.Hours(),
		"projects":        analysis.ProjectStats,
	}, nil
}

// SummarizeRecentTool implements the summarize_recent tool.
type SummarizeRecentTool struct {
	service *Service
}

func NewSummarizeRecentTool(service *Service) *SummarizeRecentTool {
	return &SummarizeRecentTool{service: service}
}

func (t *SummarizeRecentTool) Name() string {
	return "summarize_recent"
}

func (t *SummarizeRecentTool) Description() string {
	return "Summarize recent work activity across all projects over the last N days"
}

func (t *SummarizeRecentTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"days": {
				"type": "integer",
				"description": "Number of days to look back",
				"default": 7,
				"minimum": 1
			}
		}
	}`)
}

func (t *SummarizeRecentTool) Execute(args map[string]interface{}) (interface{}, error) {
	days := getInt(args, "days")
	if days <= 0 {
		days = 7
	}

	analysis, err := t.service.Analyze(filter.LastDays(days))
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"days":            days,
		"total_sessions":  analysis.TotalSessions,
		"total_messages":  analysis.TotalMessages,
		"work_time_hours": analysis.TotalWorkTime.Hours(),
		"project_count":   len(analysis.ProjectStats),
	}
	if cs := analysis.ConversationSummary; cs != nil {
		result["overall_themes"] = cs.OverallThemes
		result["most_discussed_topics"] = cs.MostDiscussedTopics
		result["productivity_insights"] = cs.ProductivityInsights
	}
	return result, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func getString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func getInt(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// RegisterAllTools registers the analysis tools with the server.
func RegisterAllTools(server *Server, service *Service) {
	server.RegisterTool(NewAnalyzeWorkPeriodTool(service))
	server.RegisterTool(NewGetProjectStatsTool(service))
	server.RegisterTool(NewSummarizeRecentTool(service))
}

var _ Tool = (*AnalyzeWorkPeriodTool)(nil)
var _ Tool = (*GetProjectStatsTool)(nil)
var _ Tool = (*SummarizeRecentTool)(nil)
