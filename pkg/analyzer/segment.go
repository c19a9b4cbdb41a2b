package analyzer

import (
	"path/filepath"

	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

// segment walks the entries once, in input order, and cuts a session
// boundary before any entry that follows a gap larger than the threshold,
// carries a different session ID, or moved to another project. The first
// entry never opens a boundary.
func (a *WorkAnalyzer) segment(entries []types.LogEntry) []types.WorkSession {
	var sessions []types.WorkSession
	var run []types.LogEntry

	for i, entry := range entries {
		if i > 0 {
			prev := entries[i-1]
			boundary := entry.Timestamp.Sub(prev.Timestamp) > a.sessionGap ||
				entry.SessionID != prev.SessionID ||
				!sameProject(prev.CWD, entry.CWD)
			if boundary && len(run) > 0 {
				sessions = append(sessions, a.newSession(run))
				run = nil
			}
		}
		run = append(run, entry)
	}

	if len(run) > 0 {
		sessions = append(sessions, a.newSession(run))
	}
	return sessions
}

// newSession closes one contiguous run into a WorkSession and attaches its
// summary. The run is never empty.
func (a *WorkAnalyzer) newSession(run []types.LogEntry) types.WorkSession {
	entries := make([]types.LogEntry, len(run))
	copy(entries, run)

	userMessages := 0
	assistantMessages := 0
	for _, entry := range entries {
		switch entry.Type {
		case types.EntryTypeUser:
			userMessages++
		case types.EntryTypeAssistant:
			assistantMessages++
		}
	}

	return types.WorkSession{
		SessionID:         entries[0].SessionID,
		ProjectPath:       entries[0].CWD,
		StartTime:         entries[0].Timestamp,
		EndTime:           entries[len(entries)-1].Timestamp,
		Entries:           entries,
		TotalMessages:     len(entries),
		UserMessages:      userMessages,
		AssistantMessages: assistantMessages,
		Summary:           a.classifier.Summarize(entries),
	}
}

// sameProject treats two working directories as the same project when their
// final path components match, case-sensitively.
func sameProject(path1, path2 string) bool {
	return filepath.Base(path1) == filepath.Base(path2)
}
