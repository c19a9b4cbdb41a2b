package classify

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

// List caps applied to session summary fields.
const (
	maxKeyDiscussions  = 5
	maxProblems        = 5
	maxSolutions       = 5
	maxLearningMoments = 3
)

// Summarize folds one session's entries into a SessionSummary in a single
// pass. User entries contribute problems, learning moments and topic
// candidates; assistant entries contribute solutions and key discussions;
// every entry contributes technology mentions.
func (c *Classifier) Summarize(entries []types.LogEntry) *types.SessionSummary {
	var (
		keyDiscussions []string
		problems       []string
		solutions      []string
		learning       []string
	)
	techCounts := make(map[string]int)
	topicCounts := make(map[string]int)

	for _, entry := range entries {
		content := FlattenContent(entry.Message.Content)
		lower := strings.ToLower(content)

		for _, tech := range c.DetectTechnologies(content) {
			techCounts[tech]++
		}

		switch entry.Type {
		case types.EntryTypeUser:
			// Newest first, so the cap keeps the most recent phrases.
			if containsAny(lower, c.problemIndicators) {
				problems = append([]string{c.ExtractKeyPhrase(content, 100)}, problems...)
			}
			if containsAny(lower, c.learningIndicators) {
				learning = append([]string{c.ExtractKeyPhrase(content, 100)}, learning...)
			}
			for _, topic := range c.ExtractTopics(content) {
				topicCounts[topic]++
			}
		case types.EntryTypeAssistant:
			if containsAny(lower, c.solutionIndicators) {
				solutions = append(solutions, c.ExtractKeyPhrase(content, 150))
			}
			if len(content) > 200 {
				keyDiscussions = append(keyDiscussions, c.ExtractKeyPhrase(content, 200))
			}
		}
	}

	technologies := sortedKeys(techCounts)
	topics := sortedKeys(topicCounts)

	return &types.SessionSummary{
		MainTopics:            topics,
		KeyDiscussions:        limit(keyDiscussions, maxKeyDiscussions),
		TechnologiesMentioned: technologies,
		ProblemsAddressed:     limit(problems, maxProblems),
		SolutionsProposed:     limit(solutions, maxSolutions),
		LearningMoments:       limit(learning, maxLearningMoments),
		OverallSummary:        c.synthesizeSummary(topics, technologies, len(problems), len(solutions)),
		TopicCounts:           topicCounts,
		TechCounts:            techCounts,
	}
}

// synthesizeSummary builds the one-line session synopsis from the detected
// pieces, in a fixed order, pipe-delimited.
func (c *Classifier) synthesizeSummary(topics, technologies []string, problems, solutions int) string {
	var parts []string
	if len(topics) > 0 {
		parts = append(parts, "primary topics: "+strings.Join(topics, ", "))
	}
	if len(technologies) > 0 {
		parts = append(parts, "technologies used: "+strings.Join(technologies, ", "))
	}
	if problems > 0 {
		parts = append(parts, fmt.Sprintf("problems addressed: %d", problems))
	}
	if solutions > 0 {
		parts = append(parts, fmt.Sprintf("solutions proposed: %d", solutions))
	}
	if len(parts) == 0 {
		return "general session"
	}
	return strings.Join(parts, " | ")
}

// AnalyzeProjectTopics runs the cross-session topic pass over every entry of
// one project: frequency-ranked primary/secondary topics, the technical
// stack (technologies mentioned at least 3 times), problem categories for
// user entries, complexity indicators and solution patterns.
func (c *Classifier) AnalyzeProjectTopics(entries []types.LogEntry) *types.TopicAnalysis {
	topicCounts := make(map[string]int)
	techCounts := make(map[string]int)
	problemCategories := make(map[string]int)
	var complexity []string

	for _, entry := range entries {
		content := FlattenContent(entry.Message.Content)

		for _, topic := range c.ExtractTopics(content) {
			topicCounts[topic]++
		}
		for _, tech := range c.DetectTechnologies(content) {
			techCounts[tech]++
		}
		if entry.Type == types.EntryTypeUser {
			if category := c.CategorizeProblem(content); category != "" {
				problemCategories[category]++
			}
		}
		if c.IsComplexDiscussion(content) {
			complexity = append(complexity, c.ExtractKeyPhrase(content, 80))
		}
	}

	ranked := rankByCount(topicCounts)
	primary := make([]string, 0, 5)
	secondary := make([]string, 0, 10)
	for i, tc := range ranked {
		switch {
		case i < 5:
			primary = append(primary, tc.Topic)
		case i < 15:
			secondary = append(secondary, tc.Topic)
		}
	}

	var stack []string
	for tech, count := range techCounts {
		if count >= 3 {
			stack = append(stack, tech)
		}
	}
	sort.Strings(stack)

	return &types.TopicAnalysis{
		PrimaryTopics:        primary,
		SecondaryTopics:      secondary,
		TechnicalStack:       stack,
		ProblemCategories:    problemCategories,
		SolutionPatterns:     c.extractSolutionPatterns(entries),
		ComplexityIndicators: limit(complexity, 5),
	}
}

// extractSolutionPatterns collects assistant phrases around "pattern" or
// "approach", deduplicated and capped at 5.
func (c *Classifier) extractSolutionPatterns(entries []types.LogEntry) []string {
	var patterns []string
	for _, entry := range entries {
		if entry.Type != types.EntryTypeAssistant {
			continue
		}
		content := FlattenContent(entry.Message.Content)
		lower := strings.ToLower(content)
		if strings.Contains(lower, "pattern") || strings.Contains(lower, "approach") {
			patterns = append(patterns, c.ExtractKeyPhrase(content, 120))
		}
	}
	return dedupeAndLimit(patterns, 5)
}

// AnalyzeConversations folds per-session summaries into the global
// conversation summary. The fold is commutative: topic rankings break count
// ties alphabetically, so session order does not matter.
func (c *Classifier) AnalyzeConversations(summaries []types.SessionSummary) *types.ConversationSummary {
	allTopics := make(map[string]int)
	techUsage := make(map[string]int)
	var commonProblems []string
	var learningProgression []string

	for _, summary := range summaries {
		for topic, count := range summary.TopicCounts {
			allTopics[topic] += count
		}
		for tech, count := range summary.TechCounts {
			techUsage[tech] += count
		}
		commonProblems = append(commonProblems, summary.ProblemsAddressed...)
		learningProgression = append(learningProgression, summary.LearningMoments...)
	}

	ranked := rankByCount(allTopics)

	return &types.ConversationSummary{
		TotalTopics:          len(ranked),
		MostDiscussedTopics:  limit(ranked, 10),
		TechnologyUsage:      techUsage,
		CommonProblems:       dedupeAndLimit(commonProblems, 10),
		LearningProgression:  dedupeAndLimit(learningProgression, 10),
		ProductivityInsights: productivityInsights(summaries, len(commonProblems)),
		OverallThemes:        overallThemes(ranked, techUsage),
	}
}

// productivityInsights derives coarse threshold-based insights. Each gate is
// independent; all three may fire, or none.
func productivityInsights(summaries []types.SessionSummary, totalProblems int) []string {
	var insights []string
	if len(summaries) > 5 {
		insights = append(insights, "Regular development activity across sessions")
	}

	distinctTechs := make(map[string]bool)
	for _, summary := range summaries {
		for _, tech := range summary.TechnologiesMentioned {
			distinctTechs[tech] = true
		}
	}
	if len(distinctTechs) > 5 {
		insights = append(insights, "Diverse technology stack in use")
	}

	if totalProblems > 10 {
		insights = append(insights, "Active problem-solving throughout")
	}
	return insights
}

// overallThemes names the dominant technology and bands topic volume.
func overallThemes(rankedTopics []types.TopicCount, techUsage map[string]int) []string {
	var themes []string

	dominant := ""
	best := 0
	for tech, count := range techUsage {
		if count > best || (count == best && (dominant == "" || tech < dominant)) {
			dominant = tech
			best = count
		}
	}
	if dominant != "" {
		themes = append(themes, fmt.Sprintf("%s-centered development", dominant))
	}

	switch total := len(rankedTopics); {
	case total > 20:
		themes = append(themes, "Broad coverage across many topics")
	case total > 5:
		themes = append(themes, "Focused learning and development")
	}
	return themes
}

// rankByCount orders a frequency map by count descending, breaking ties by
// key ascending so the ranking is deterministic.
func rankByCount(counts map[string]int) []types.TopicCount {
	ranked := make([]types.TopicCount, 0, len(counts))
	for topic, count := range counts {
		ranked = append(ranked, types.TopicCount{Topic: topic, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Topic < ranked[j].Topic
	})
	return ranked
}

func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// dedupeAndLimit sorts, removes duplicates and caps the list.
func dedupeAndLimit(items []string, max int) []string {
	sort.Strings(items)
	return limit(slices.Compact(items), max)
}

func limit[T any](items []T, max int) []T {
	if len(items) > max {
		return items[:max]
	}
	return items
}
