package analyzer

import (
	"strings"
	"time"

	"github.com/zumikiti/claude-code-work-analysis/pkg/classify"
	"github.com/zumikiti/claude-code-work-analysis/pkg/scanner"
	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

// projectStats folds sessions into per-project statistics keyed by the
// normalized project name, then attaches a topic analysis over each
// project's full entry set.
func (a *WorkAnalyzer) projectStats(sessions []types.WorkSession) map[string]*types.ProjectStats {
	stats := make(map[string]*types.ProjectStats)

	for i := range sessions {
		session := &sessions[i]
		name := scanner.ProjectName(session.ProjectPath)

		ps, ok := stats[name]
		if !ok {
			ps = &types.ProjectStats{
				ProjectName:   name,
				ActivityTypes: make(map[string]int),
			}
			stats[name] = ps
		}

		ps.TotalSessions++
		ps.TotalMessages += session.TotalMessages
		ps.WorkTime += session.Duration()

		for _, entry := range session.Entries {
			if entry.Type != types.EntryTypeUser {
				continue
			}
			activity := a.classifier.DetectActivity(classify.FlattenContent(entry.Message.Content))
			ps.ActivityTypes[activity.String()]++
		}

		updateMostActiveDay(ps, session.StartTime)
	}

	for name, ps := range stats {
		var entries []types.LogEntry
		for i := range sessions {
			if scanner.ProjectName(sessions[i].ProjectPath) == name {
				entries = append(entries, sessions[i].Entries...)
			}
		}
		if len(entries) > 0 {
			ps.TopicAnalysis = a.classifier.AnalyzeProjectTopics(entries)
		}
	}

	return stats
}

// updateMostActiveDay keeps the last-write-wins heuristic: the most recently
// started session on a new calendar day becomes the "most active day". This
// is a deliberate simplification, not per-day message counting.
func updateMostActiveDay(ps *types.ProjectStats, start time.Time) {
	if ps.MostActiveDay == nil {
		t := start
		ps.MostActiveDay = &t
		return
	}
	if !sameDay(start, *ps.MostActiveDay) && start.After(*ps.MostActiveDay) {
		t := start
		ps.MostActiveDay = &t
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// ProjectSessions returns the sessions whose normalized project name
// contains the given name.
func ProjectSessions(analysis *types.WorkAnalysis, projectName string) []*types.WorkSession {
	var matched []*types.WorkSession
	for i := range analysis.Sessions {
		if strings.Contains(scanner.ProjectName(analysis.Sessions[i].ProjectPath), projectName) {
			matched = append(matched, &analysis.Sessions[i])
		}
	}
	return matched
}

// SessionsInRange returns the sessions fully contained in [start, end].
func SessionsInRange(analysis *types.WorkAnalysis, start, end time.Time) []*types.WorkSession {
	var matched []*types.WorkSession
	for i := range analysis.Sessions {
		session := &analysis.Sessions[i]
		if !session.StartTime.Before(start) && !session.EndTime.After(end) {
			matched = append(matched, session)
		}
	}
	return matched
}
