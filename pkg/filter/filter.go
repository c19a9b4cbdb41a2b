// Package filter narrows log entries by time range and project before they
// reach the analyzer.
package filter

import (
	"strings"
	"time"

	"github.com/zumikiti/claude-code-work-analysis/pkg/scanner"
	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

// Filter selects entries by an inclusive time range and/or a
// case-insensitive project substring. The zero value matches everything.
type Filter struct {
	From    *time.Time
	To      *time.Time
	Project string
}

// New builds a filter from optional bounds and a project substring.
func New(from, to *time.Time, project string) Filter {
	return Filter{From: from, To: to, Project: project}
}

// LastDays filters to the past n days up to now, in local time.
func LastDays(n int) Filter {
	now := time.Now()
	from := now.AddDate(0, 0, -n)
	return Filter{From: &from, To: &now}
}

// CurrentWeek filters from the most recent Monday (local time) to now.
func CurrentWeek() Filter {
	now := time.Now()
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -daysSinceMonday)
	return Filter{From: &monday, To: &now}
}

// ForProject filters by project substring only.
func ForProject(project string) Filter {
	return Filter{Project: project}
}

// IsEmpty reports whether the filter has no active criteria.
func (f Filter) IsEmpty() bool {
	return f.From == nil && f.To == nil && f.Project == ""
}

// Matches reports whether one entry passes the filter.
func (f Filter) Matches(entry *types.LogEntry) bool {
	if f.From != nil && entry.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && entry.Timestamp.After(*f.To) {
		return false
	}
	if f.Project != "" && !matchesProject(entry.CWD, f.Project) {
		return false
	}
	return true
}

// Apply returns the entries that pass the filter, preserving order.
func (f Filter) Apply(entries []types.LogEntry) []types.LogEntry {
	if f.IsEmpty() {
		return entries
	}
	var matched []types.LogEntry
	for i := range entries {
		if f.Matches(&entries[i]) {
			matched = append(matched, entries[i])
		}
	}
	return matched
}

// FilterDirectories keeps the project directories whose decoded name
// matches the project filter.
func (f Filter) FilterDirectories(dirs []string) []string {
	if f.Project == "" {
		return dirs
	}
	var matched []string
	for _, dir := range dirs {
		if matchesProject(scanner.ProjectName(dir), f.Project) {
			matched = append(matched, dir)
		}
	}
	return matched
}

// And intersects two filters: the tighter time bounds win, and two project
// filters combine into one space-joined substring. The concatenation is
// observable matching behavior and kept as-is.
func (f Filter) And(other Filter) Filter {
	combined := Filter{From: laterOf(f.From, other.From), To: earlierOf(f.To, other.To)}
	switch {
	case f.Project != "" && other.Project != "":
		combined.Project = f.Project + " " + other.Project
	case f.Project != "":
		combined.Project = f.Project
	default:
		combined.Project = other.Project
	}
	return combined
}

func matchesProject(path, project string) bool {
	return strings.Contains(strings.ToLower(path), strings.ToLower(project))
}

func laterOf(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil || a.After(*b) {
		return a
	}
	return b
}

func earlierOf(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil || a.Before(*b) {
		return a
	}
	return b
}
