// Package report renders a WorkAnalysis as a markdown report or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zumikiti/claude-code-work-analysis/pkg/scanner"
	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

// Generator renders analysis results.
type Generator struct {
	includeSessionDetails bool
	maxDetailedSessions   int
}

// New returns a Generator with session details enabled, capped at 10.
func New() *Generator {
	return &Generator{
		includeSessionDetails: true,
		maxDetailedSessions:   10,
	}
}

// WithSessionDetails toggles the per-session section of markdown reports.
func (g *Generator) WithSessionDetails(include bool) *Generator {
	g.includeSessionDetails = include
	return g
}

// WithMaxSessions caps how many sessions get detailed.
func (g *Generator) WithMaxSessions(max int) *Generator {
	g.maxDetailedSessions = max
	return g
}

// Markdown renders the full markdown report.
func (g *Generator) Markdown(analysis *types.WorkAnalysis) string {
	var b strings.Builder

	b.WriteString(g.header(analysis))
	b.WriteString("\n\n## Executive Summary\n\n")
	b.WriteString(g.executiveSummary(analysis))
	b.WriteString("\n\n## Project Breakdown\n\n")
	b.WriteString(g.projectBreakdown(analysis))
	b.WriteString("\n## Activity Analysis\n\n")
	b.WriteString(g.activityAnalysis(analysis))
	b.WriteString("\n## Time Analysis\n\n")
	b.WriteString(g.timeAnalysis(analysis))
	b.WriteString("\n## Conversation Summary\n\n")
	b.WriteString(g.conversationSection(analysis))

	if g.includeSessionDetails {
		b.WriteString("\n## Recent Sessions\n\n")
		b.WriteString(g.sessionDetails(analysis))
	}

	b.WriteString("\n## Insights & Recommendations\n\n")
	b.WriteString(g.recommendations(analysis))
	b.WriteString("\n")

	return b.String()
}

func (g *Generator) header(analysis *types.WorkAnalysis) string {
	start := analysis.TimeRange.Start.Local()
	end := analysis.TimeRange.End.Local()
	return fmt.Sprintf("# Claude Work Analysis Report\n\n**Analysis Period:** %s to %s",
		start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"))
}

func (g *Generator) executiveSummary(analysis *types.WorkAnalysis) string {
	avgSessionMinutes := int64(0)
	avgMessages := 0
	if analysis.TotalSessions > 0 {
		avgSessionMinutes = int64(analysis.TotalWorkTime.Minutes()) / int64(analysis.TotalSessions)
		avgMessages = analysis.TotalMessages / analysis.TotalSessions
	}

	return fmt.Sprintf(
		"- **Total Work Sessions:** %s\n"+
			"- **Total Messages:** %s\n"+
			"- **Total Work Time:** %.1f hours\n"+
			"- **Average Session Length:** %d minutes\n"+
			"- **Average Messages per Session:** %d\n"+
			"- **Active Projects:** %d",
		humanize.Comma(int64(analysis.TotalSessions)),
		humanize.Comma(int64(analysis.TotalMessages)),
		analysis.TotalWorkTime.Hours(),
		avgSessionMinutes,
		avgMessages,
		len(analysis.ProjectStats),
	)
}

func (g *Generator) projectBreakdown(analysis *types.WorkAnalysis) string {
	projects := make([]*types.ProjectStats, 0, len(analysis.ProjectStats))
	for _, stats := range analysis.ProjectStats {
		projects = append(projects, stats)
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].WorkTime != projects[j].WorkTime {
			return projects[i].WorkTime > projects[j].WorkTime
		}
		return projects[i].ProjectName < projects[j].ProjectName
	})

	var b strings.Builder
	for _, stats := range projects {
		primaryActivity := "N/A"
		if activity, count := topActivity(stats.ActivityTypes); activity != "" {
			primaryActivity = fmt.Sprintf("%s (%d)", activity, count)
		}

		fmt.Fprintf(&b, "### %s\n- **Sessions:** %d\n- **Messages:** %s\n- **Work Time:** %.1f hours\n- **Primary Activity:** %s\n",
			stats.ProjectName,
			stats.TotalSessions,
			humanize.Comma(int64(stats.TotalMessages)),
			stats.WorkTime.Hours(),
			primaryActivity,
		)

		if ta := stats.TopicAnalysis; ta != nil {
			if len(ta.PrimaryTopics) > 0 {
				fmt.Fprintf(&b, "- **Primary Topics:** %s\n", strings.Join(ta.PrimaryTopics, ", "))
			}
			if len(ta.TechnicalStack) > 0 {
				fmt.Fprintf(&b, "- **Technical Stack:** %s\n", strings.Join(ta.TechnicalStack, ", "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (g *Generator) activityAnalysis(analysis *types.WorkAnalysis) string {
	totals := make(map[string]int)
	for _, stats := range analysis.ProjectStats {
		for activity, count := range stats.ActivityTypes {
			totals[activity] += count
		}
	}

	type activityCount struct {
		name  string
		count int
	}
	activities := make([]activityCount, 0, len(totals))
	total := 0
	for name, count := range totals {
		activities = append(activities, activityCount{name, count})
		total += count
	}
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].count != activities[j].count {
			return activities[i].count > activities[j].count
		}
		return activities[i].name < activities[j].name
	})

	var b strings.Builder
	for _, a := range activities {
		percent := 0.0
		if total > 0 {
			percent = float64(a.count) / float64(total) * 100
		}
		fmt.Fprintf(&b, "- **%s:** %d times (%.1f%%)\n", a.name, a.count, percent)
	}
	return b.String()
}

func (g *Generator) timeAnalysis(analysis *types.WorkAnalysis) string {
	type dayStats struct {
		sessions int
		minutes  int64
	}
	daily := make(map[string]*dayStats)
	hourly := make(map[int]int)

	for i := range analysis.Sessions {
		session := &analysis.Sessions[i]
		day := session.StartTime.Local().Format("2006-01-02")
		if daily[day] == nil {
			daily[day] = &dayStats{}
		}
		daily[day].sessions++
		daily[day].minutes += int64(session.Duration().Minutes())
		hourly[session.StartTime.Local().Hour()]++
	}

	var b strings.Builder

	bestDay := ""
	for day, stats := range daily {
		if bestDay == "" || stats.sessions > daily[bestDay].sessions ||
			(stats.sessions == daily[bestDay].sessions && day > bestDay) {
			bestDay = day
		}
	}
	if bestDay != "" {
		fmt.Fprintf(&b, "**Most Productive Day:** %s (%d sessions, %.1f hours)\n\n",
			bestDay, daily[bestDay].sessions, float64(daily[bestDay].minutes)/60)
	}

	peakHour, peakCount := -1, 0
	for hour, count := range hourly {
		if count > peakCount || (count == peakCount && hour < peakHour) {
			peakHour, peakCount = hour, count
		}
	}
	if peakHour >= 0 {
		fmt.Fprintf(&b, "**Peak Activity Hour:** %d:00 (%d sessions)\n\n", peakHour, peakCount)
	}

	b.WriteString("**Recent Daily Activity:**\n")
	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	for i, day := range days {
		if i >= 7 {
			break
		}
		fmt.Fprintf(&b, "- %s: %d sessions (%.1fh)\n", day, daily[day].sessions, float64(daily[day].minutes)/60)
	}
	return b.String()
}

func (g *Generator) conversationSection(analysis *types.WorkAnalysis) string {
	cs := analysis.ConversationSummary
	if cs == nil {
		return "Conversation analysis is not available.\n"
	}

	var b strings.Builder
	if len(cs.OverallThemes) > 0 {
		fmt.Fprintf(&b, "**Overall Themes:** %s\n\n", strings.Join(cs.OverallThemes, ", "))
	}
	if len(cs.MostDiscussedTopics) > 0 {
		b.WriteString("**Most Discussed Topics:**\n")
		for i, tc := range cs.MostDiscussedTopics {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s (%d mentions)\n", tc.Topic, tc.Count)
		}
		b.WriteString("\n")
	}
	if len(cs.TechnologyUsage) > 0 {
		b.WriteString("**Technology Usage:**\n")
		for i, tc := range rankCounts(cs.TechnologyUsage) {
			if i >= 8 {
				break
			}
			fmt.Fprintf(&b, "- %s (%d times)\n", tc.Topic, tc.Count)
		}
		b.WriteString("\n")
	}
	writeCapped(&b, "**Common Problem Areas:**", cs.CommonProblems, 3)
	writeCapped(&b, "**Learning Highlights:**", cs.LearningProgression, 3)
	if len(cs.ProductivityInsights) > 0 {
		b.WriteString("**Productivity Insights:**\n")
		for _, insight := range cs.ProductivityInsights {
			fmt.Fprintf(&b, "- %s\n", insight)
		}
	}
	return b.String()
}

func (g *Generator) sessionDetails(analysis *types.WorkAnalysis) string {
	recent := make([]*types.WorkSession, 0, len(analysis.Sessions))
	for i := range analysis.Sessions {
		recent = append(recent, &analysis.Sessions[i])
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].StartTime.After(recent[j].StartTime)
	})

	var b strings.Builder
	for i, session := range recent {
		if i >= g.maxDetailedSessions {
			break
		}
		shortID := session.SessionID.String()[:8]
		fmt.Fprintf(&b, "### Session %s\n**Project:** %s\n**Duration:** %d minutes\n**Messages:** %d (User: %d, Assistant: %d)\n**Time:** %s\n",
			shortID,
			scanner.ProjectName(session.ProjectPath),
			int64(session.Duration().Minutes()),
			session.TotalMessages,
			session.UserMessages,
			session.AssistantMessages,
			session.StartTime.Local().Format("2006-01-02 15:04"),
		)
		if summary := session.Summary; summary != nil {
			fmt.Fprintf(&b, "**Summary:** %s\n", summary.OverallSummary)
			if len(summary.MainTopics) > 0 {
				fmt.Fprintf(&b, "**Topics:** %s\n", strings.Join(summary.MainTopics, ", "))
			}
			if len(summary.TechnologiesMentioned) > 0 {
				fmt.Fprintf(&b, "**Technologies:** %s\n", strings.Join(summary.TechnologiesMentioned, ", "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (g *Generator) recommendations(analysis *types.WorkAnalysis) string {
	var recs []string

	if analysis.TotalSessions > 0 {
		avgMinutes := int64(analysis.TotalWorkTime.Minutes()) / int64(analysis.TotalSessions)
		if avgMinutes < 15 {
			recs = append(recs, "**Short Sessions Detected:** Consider consolidating related tasks into longer, more focused work sessions.")
		} else if avgMinutes > 120 {
			recs = append(recs, "**Long Sessions Detected:** Consider taking breaks during extended coding sessions to maintain focus.")
		}
	}

	if len(analysis.ProjectStats) > 5 {
		recs = append(recs, "**High Project Diversity:** Many projects in flight. Batching similar tasks reduces context-switching overhead.")
	} else if len(analysis.ProjectStats) == 1 {
		recs = append(recs, "**Single Project Focus:** All sessions on one project. Check that this matches your current goals.")
	}

	totals := make(map[string]int)
	for _, stats := range analysis.ProjectStats {
		for activity, count := range stats.ActivityTypes {
			totals[activity] += count
		}
	}
	if top, _ := topActivity(totals); top != "" {
		switch top {
		case "Debugging":
			recs = append(recs, "**Debug-Heavy Period:** High debugging activity. More tests or code review may help.")
		case "Learning":
			recs = append(recs, "**Learning Mode:** Lots of learning activity. Document the takeaways for future reference.")
		case "Coding":
			recs = append(recs, "**High Productivity:** Strong coding activity across the period.")
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "**Overall:** Work patterns look healthy.")
	}
	return strings.Join(recs, "\n\n")
}

// JSON renders the analysis as indented JSON.
func (g *Generator) JSON(analysis *types.WorkAnalysis) (string, error) {
	projects := make([]map[string]any, 0, len(analysis.ProjectStats))
	for _, tc := range rankProjects(analysis.ProjectStats) {
		stats := analysis.ProjectStats[tc]
		projects = append(projects, map[string]any{
			"name":            stats.ProjectName,
			"sessions":        stats.TotalSessions,
			"messages":        stats.TotalMessages,
			"work_time_hours": stats.WorkTime.Hours(),
			"activity_types":  stats.ActivityTypes,
		})
	}

	sessions := make([]map[string]any, 0, g.maxDetailedSessions)
	for i := range analysis.Sessions {
		if i >= g.maxDetailedSessions {
			break
		}
		session := &analysis.Sessions[i]
		entry := map[string]any{
			"session_id":         session.SessionID.String(),
			"project_path":       session.ProjectPath,
			"start_time":         session.StartTime.Local().Format(time.RFC3339),
			"end_time":           session.EndTime.Local().Format(time.RFC3339),
			"duration_minutes":   int64(session.Duration().Minutes()),
			"total_messages":     session.TotalMessages,
			"user_messages":      session.UserMessages,
			"assistant_messages": session.AssistantMessages,
		}
		if summary := session.Summary; summary != nil {
			entry["summary"] = map[string]any{
				"overall_summary":        summary.OverallSummary,
				"main_topics":            summary.MainTopics,
				"technologies_mentioned": summary.TechnologiesMentioned,
				"problems_addressed":     len(summary.ProblemsAddressed),
				"solutions_proposed":     len(summary.SolutionsProposed),
			}
		}
		sessions = append(sessions, entry)
	}

	doc := map[string]any{
		"summary": map[string]any{
			"total_sessions":       analysis.TotalSessions,
			"total_messages":       analysis.TotalMessages,
			"total_work_time_hours": analysis.TotalWorkTime.Hours(),
			"time_range": map[string]any{
				"start": analysis.TimeRange.Start.Local().Format(time.RFC3339),
				"end":   analysis.TimeRange.End.Local().Format(time.RFC3339),
			},
		},
		"projects": projects,
		"sessions": sessions,
	}
	if cs := analysis.ConversationSummary; cs != nil {
		doc["conversation_summary"] = map[string]any{
			"total_topics":          cs.TotalTopics,
			"most_discussed_topics": cs.MostDiscussedTopics,
			"technology_usage":      cs.TechnologyUsage,
			"overall_themes":        cs.OverallThemes,
			"productivity_insights": cs.ProductivityInsights,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(data), nil
}

func topActivity(counts map[string]int) (string, int) {
	best := ""
	bestCount := 0
	for activity, count := range counts {
		if count > bestCount || (count == bestCount && best != "" && activity < best) {
			best, bestCount = activity, count
		}
	}
	return best, bestCount
}

func rankCounts(counts map[string]int) []types.TopicCount {
	ranked := make([]types.TopicCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, types.TopicCount{Topic: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Topic < ranked[j].Topic
	})
	return ranked
}

func rankProjects(stats map[string]*types.ProjectStats) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeCapped(b *strings.Builder, heading string, items []string, max int) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading + "\n")
	for i, item := range items {
		if i >= max {
			break
		}
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
