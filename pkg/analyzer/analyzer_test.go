package analyzer

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

var (
	sessionA = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	sessionB = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
)

func entry(sid uuid.UUID, cwd string, role types.EntryType, offset time.Duration, text string) types.LogEntry {
	return types.LogEntry{
		SessionID: sid,
		CWD:       cwd,
		Type:      role,
		Timestamp: baseTime.Add(offset),
		Message: types.Message{
			Role:    string(role),
			Content: types.TextContent(text),
		},
	}
}

func TestAnalyzeSingleSession(t *testing.T) {
	entries := []types.LogEntry{
		entry(sessionA, "/home/u/code/app", types.EntryTypeUser, 0, "implement the parser"),
		entry(sessionA, "/home/u/code/app", types.EntryTypeAssistant, time.Minute, "done"),
		entry(sessionA, "/home/u/code/app", types.EntryTypeUser, 2*time.Minute, "now fix the bug"),
		entry(sessionA, "/home/u/code/app", types.EntryTypeAssistant, 3*time.Minute, "fixed"),
	}

	analysis := New().Analyze(entries)

	if analysis.TotalSessions != 1 {
		t.Fatalf("TotalSessions = %d, want 1", analysis.TotalSessions)
	}
	session := analysis.Sessions[0]
	if session.TotalMessages != 4 || session.UserMessages != 2 || session.AssistantMessages != 2 {
		t.Errorf("message counts = %d/%d/%d, want 4/2/2",
			session.TotalMessages, session.UserMessages, session.AssistantMessages)
	}
	if !session.StartTime.Equal(baseTime) || !session.EndTime.Equal(baseTime.Add(3*time.Minute)) {
		t.Errorf("session span = %v..%v, want first and last entry timestamps",
			session.StartTime, session.EndTime)
	}
	if session.Summary == nil {
		t.Error("session has no summary")
	}
	if analysis.TotalWorkTime != 3*time.Minute {
		t.Errorf("TotalWorkTime = %v, want 3m", analysis.TotalWorkTime)
	}
}

func TestAnalyzeGapSplitsAndDiscardsShortSessions(t *testing.T) {
	entries := []types.LogEntry{
		entry(sessionA, "/home/u/code/app", types.EntryTypeUser, 0, "hello"),
		entry(sessionA, "/home/u/code/app", types.EntryTypeUser, 2*time.Hour+time.Second, "back again"),
	}

	analysis := New().Analyze(entries)

	if analysis.TotalSessions != 0 {
		t.Errorf("TotalSessions = %d, want 0 (both fragments below minimum)", analysis.TotalSessions)
	}
	if len(analysis.Sessions) != 0 {
		t.Errorf("Sessions = %v, want empty", analysis.Sessions)
	}
	// The analyzed span still covers the discarded fragments.
	if !analysis.TimeRange.Start.Equal(baseTime) ||
		!analysis.TimeRange.End.Equal(baseTime.Add(2*time.Hour+time.Second)) {
		t.Errorf("TimeRange = %+v, want full input span", analysis.TimeRange)
	}
}

func TestAnalyzeExactGapIsNotBoundary(t *testing.T) {
	entries := []types.LogEntry{
		entry(sessionA, "/home/u/code/app", types.EntryTypeUser, 0, "start"),
		entry(sessionA, "/home/u/code/app", types.EntryTypeAssistant, 2*time.Hour, "still here"),
	}

	analysis := New().WithMinMessages(1).Analyze(entries)

	if analysis.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1 (gap must exceed threshold)", analysis.TotalSessions)
	}
}

func TestAnalyzeSessionIDBoundary(t *testing.T) {
	entries := []types.LogEntry{
		entry(sessionA, "/home/u/code/app", types.EntryTypeUser, 0, "one"),
		entry(sessionA, "/home/u/code/app", types.EntryTypeAssistant, time.Minute, "two"),
		entry(sessionB, "/home/u/code/app", types.EntryTypeUser, 2*time.Minute, "three"),
		entry(sessionB, "/home/u/code/app", types.EntryTypeAssistant, 3*time.Minute, "four"),
	}

	analysis := New().WithMinMessages(1).Analyze(entries)

	if analysis.TotalSessions != 2 {
		t.Fatalf("TotalSessions = %d, want 2", analysis.TotalSessions)
	}
	if analysis.Sessions[0].SessionID != sessionA || analysis.Sessions[1].SessionID != sessionB {
		t.Errorf("session IDs = %v, %v", analysis.Sessions[0].SessionID, analysis.Sessions[1].SessionID)
	}
}

func TestAnalyzeProjectBoundary(t *testing.T) {
	tests := []struct {
		name         string
		cwd1, cwd2   string
		wantSessions int
	}{
		{
			name:         "different final component splits",
			cwd1:         "/home/u/code/alpha",
			cwd2:         "/home/u/code/beta",
			wantSessions: 2,
		},
		{
			name:         "same final component stays together",
			cwd1:         "/home/alice/app",
			cwd2:         "/home/bob/app",
			wantSessions: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := []types.LogEntry{
				entry(sessionA, tt.cwd1, types.EntryTypeUser, 0, "one"),
				entry(sessionA, tt.cwd2, types.EntryTypeUser, time.Minute, "two"),
			}

			analysis := New().WithMinMessages(1).Analyze(entries)
			if analysis.TotalSessions != tt.wantSessions {
				t.Errorf("TotalSessions = %d, want %d", analysis.TotalSessions, tt.wantSessions)
			}
		})
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	first := New().Analyze(nil)
	second := New().Analyze(nil)

	epoch := time.Unix(0, 0).UTC()
	if !first.TimeRange.Start.Equal(epoch) || !first.TimeRange.End.Equal(epoch) {
		t.Errorf("TimeRange = %+v, want epoch sentinel", first.TimeRange)
	}
	if first.ProjectStats == nil || len(first.ProjectStats) != 0 {
		t.Errorf("ProjectStats = %v, want empty non-nil map", first.ProjectStats)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("empty analysis is not deterministic across calls")
	}
}

func TestAnalyzeCustomGap(t *testing.T) {
	entries := []types.LogEntry{
		entry(sessionA, "/home/u/code/app", types.EntryTypeUser, 0, "one"),
		entry(sessionA, "/home/u/code/app", types.EntryTypeUser, 10*time.Minute, "two"),
	}

	analysis := New().WithSessionGap(5 * time.Minute).WithMinMessages(1).Analyze(entries)
	if analysis.TotalSessions != 2 {
		t.Errorf("TotalSessions = %d, want 2 with a 5m gap threshold", analysis.TotalSessions)
	}
}

func TestProjectStats(t *testing.T) {
	entries := []types.LogEntry{
		entry(sessionA, "/home/u/code/myapp", types.EntryTypeUser, 0, "implement the cache"),
		entry(sessionA, "/home/u/code/myapp", types.EntryTypeAssistant, time.Minute, "done"),
		entry(sessionA, "/home/u/code/myapp", types.EntryTypeUser, 2*time.Minute, "fix the error now"),
	}

	analysis := New().Analyze(entries)

	stats, ok := analysis.ProjectStats["myapp"]
	if !ok {
		t.Fatalf("ProjectStats keys = %v, want myapp", analysis.ProjectStats)
	}
	if stats.TotalSessions != 1 || stats.TotalMessages != 3 {
		t.Errorf("stats = %d sessions, %d messages, want 1 and 3", stats.TotalSessions, stats.TotalMessages)
	}
	if stats.ActivityTypes["Coding"] != 1 || stats.ActivityTypes["Debugging"] != 1 {
		t.Errorf("ActivityTypes = %v, want one Coding and one Debugging", stats.ActivityTypes)
	}
	if stats.MostActiveDay == nil || !stats.MostActiveDay.Equal(baseTime) {
		t.Errorf("MostActiveDay = %v, want the session start", stats.MostActiveDay)
	}
	if stats.TopicAnalysis == nil {
		t.Error("TopicAnalysis missing")
	}
}

func TestSessionsInRange(t *testing.T) {
	entries := []types.LogEntry{
		entry(sessionA, "/home/u/code/app", types.EntryTypeUser, 0, "one"),
		entry(sessionA, "/home/u/code/app", types.EntryTypeUser, time.Minute, "two"),
		entry(sessionB, "/home/u/code/app", types.EntryTypeUser, 3*time.Hour, "three"),
		entry(sessionB, "/home/u/code/app", types.EntryTypeUser, 3*time.Hour+time.Minute, "four"),
	}

	analysis := New().WithMinMessages(1).Analyze(entries)
	if analysis.TotalSessions != 2 {
		t.Fatalf("TotalSessions = %d, want 2", analysis.TotalSessions)
	}

	got := SessionsInRange(analysis, baseTime, baseTime.Add(time.Hour))
	if len(got) != 1 || !got[0].StartTime.Equal(baseTime) {
		t.Errorf("SessionsInRange returned %d sessions, want only the first", len(got))
	}
}
