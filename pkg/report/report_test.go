package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zumikiti/claude-code-work-analysis/pkg/analyzer"
	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

func fixtureAnalysis(t *testing.T) *types.WorkAnalysis {
	t.Helper()
	sid := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	entry := func(role types.EntryType, offset time.Duration, text string) types.LogEntry {
		return types.LogEntry{
			SessionID: sid,
			CWD:       "/home/u/code/myapp",
			Type:      role,
			Timestamp: base.Add(offset),
			Message:   types.Message{Role: string(role), Content: types.TextContent(text)},
		}
	}

	return analyzer.New().Analyze([]types.LogEntry{
		entry(types.EntryTypeUser, 0, "implement the redis cache"),
		entry(types.EntryTypeAssistant, time.Minute, "done, added a redis client"),
		entry(types.EntryTypeUser, 2*time.Minute, "now fix the timeout error"),
		entry(types.EntryTypeAssistant, 3*time.Minute, "fixed"),
	})
}

func TestMarkdown(t *testing.T) {
	analysis := fixtureAnalysis(t)
	out := New().Markdown(analysis)

	for _, section := range []string{
		"# Claude Work Analysis Report",
		"## Executive Summary",
		"## Project Breakdown",
		"## Activity Analysis",
		"## Time Analysis",
		"## Conversation Summary",
		"## Recent Sessions",
		"## Insights & Recommendations",
	} {
		if !strings.Contains(out, section) {
			t.Errorf("markdown report missing section %q", section)
		}
	}

	if !strings.Contains(out, "myapp") {
		t.Error("markdown report does not mention the project")
	}
	if !strings.Contains(out, "**Total Work Sessions:** 1") {
		t.Error("markdown report missing session total")
	}
}

func TestMarkdownWithoutSessionDetails(t *testing.T) {
	analysis := fixtureAnalysis(t)
	out := New().WithSessionDetails(false).Markdown(analysis)

	if strings.Contains(out, "## Recent Sessions") {
		t.Error("session details should be omitted")
	}
}

func TestJSON(t *testing.T) {
	analysis := fixtureAnalysis(t)
	out, err := New().JSON(analysis)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var doc struct {
		Summary struct {
			TotalSessions int `json:"total_sessions"`
			TotalMessages int `json:"total_messages"`
		} `json:"summary"`
		Projects []struct {
			Name     string `json:"name"`
			Sessions int    `json:"sessions"`
		} `json:"projects"`
		Sessions []json.RawMessage `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}

	if doc.Summary.TotalSessions != 1 || doc.Summary.TotalMessages != 4 {
		t.Errorf("summary = %+v, want 1 session with 4 messages", doc.Summary)
	}
	if len(doc.Projects) != 1 || doc.Projects[0].Name != "myapp" {
		t.Errorf("projects = %+v, want myapp", doc.Projects)
	}
	if len(doc.Sessions) != 1 {
		t.Errorf("sessions = %d entries, want 1", len(doc.Sessions))
	}
}

func TestJSONEmptyAnalysis(t *testing.T) {
	analysis := analyzer.New().Analyze(nil)
	out, err := New().JSON(analysis)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Error("JSON() on empty analysis is not valid JSON")
	}
}

func TestTopActivity(t *testing.T) {
	name, count := topActivity(map[string]int{"Coding": 3, "Debugging": 1})
	if name != "Coding" || count != 3 {
		t.Errorf("topActivity() = %q/%d, want Coding/3", name, count)
	}

	if name, _ := topActivity(map[string]int{"Coding": 2, "Debugging": 2}); name != "Coding" {
		t.Errorf("topActivity() tie = %q, want alphabetical winner Coding", name)
	}

	if name, _ := topActivity(nil); name != "" {
		t.Errorf("topActivity(nil) = %q, want empty", name)
	}
}
