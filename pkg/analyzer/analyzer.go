// Package analyzer is the batch analysis engine: it partitions an ordered
// stream of log entries into work sessions, summarizes each session, and
// aggregates per-project and global conversation statistics. The engine is a
// pure in-memory transform; callers own all I/O and must feed entries
// sorted by timestamp ascending.
package analyzer

import (
	"time"

	"github.com/zumikiti/claude-code-work-analysis/pkg/classify"
	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

// Defaults for the two segmentation tunables.
const (
	DefaultSessionGap         = 2 * time.Hour
	DefaultMinSessionMessages = 3
)

// WorkAnalyzer runs one batch of log entries through segmentation,
// classification and aggregation. It holds no mutable state between calls,
// so independent analyses may run concurrently on separate batches.
type WorkAnalyzer struct {
	sessionGap         time.Duration
	minSessionMessages int
	classifier         *classify.Classifier
}

// New returns a WorkAnalyzer with default tunables.
func New() *WorkAnalyzer {
	return &WorkAnalyzer{
		sessionGap:         DefaultSessionGap,
		minSessionMessages: DefaultMinSessionMessages,
		classifier:         classify.New(),
	}
}

// WithSessionGap sets the maximum silence between adjacent entries of one
// session. Gaps larger than this force a session boundary.
func (a *WorkAnalyzer) WithSessionGap(gap time.Duration) *WorkAnalyzer {
	a.sessionGap = gap
	return a
}

// WithMinMessages sets the minimum entry count below which a session is
// discarded entirely.
func (a *WorkAnalyzer) WithMinMessages(min int) *WorkAnalyzer {
	a.minSessionMessages = min
	return a
}

// Analyze transforms one batch of entries into a WorkAnalysis. An empty
// batch yields a deterministic empty result anchored at the Unix epoch
// rather than the current time.
func (a *WorkAnalyzer) Analyze(entries []types.LogEntry) *types.WorkAnalysis {
	if len(entries) == 0 {
		epoch := time.Unix(0, 0).UTC()
		return &types.WorkAnalysis{
			Sessions:     []types.WorkSession{},
			ProjectStats: map[string]*types.ProjectStats{},
			TimeRange:    types.TimeRange{Start: epoch, End: epoch},
		}
	}

	sessions := a.segment(entries)

	meaningful := sessions[:0:0]
	for _, session := range sessions {
		if len(session.Entries) >= a.minSessionMessages {
			meaningful = append(meaningful, session)
		}
	}

	totalMessages := 0
	var totalWorkTime time.Duration
	for i := range meaningful {
		totalMessages += len(meaningful[i].Entries)
		totalWorkTime += meaningful[i].Duration()
	}

	summaries := make([]types.SessionSummary, 0, len(meaningful))
	for i := range meaningful {
		if meaningful[i].Summary != nil {
			summaries = append(summaries, *meaningful[i].Summary)
		}
	}

	return &types.WorkAnalysis{
		Sessions:            meaningful,
		ProjectStats:        a.projectStats(meaningful),
		TimeRange:           timeRange(entries),
		TotalSessions:       len(meaningful),
		TotalMessages:       totalMessages,
		TotalWorkTime:       totalWorkTime,
		ConversationSummary: a.classifier.AnalyzeConversations(summaries),
	}
}

// timeRange is computed over the raw input entries, not the surviving
// sessions, so discarded short runs still widen the analyzed span.
func timeRange(entries []types.LogEntry) types.TimeRange {
	r := types.TimeRange{Start: entries[0].Timestamp, End: entries[0].Timestamp}
	for _, entry := range entries[1:] {
		if entry.Timestamp.Before(r.Start) {
			r.Start = entry.Timestamp
		}
		if entry.Timestamp.After(r.End) {
			r.End = entry.Timestamp
		}
	}
	return r
}
