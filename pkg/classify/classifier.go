// Package classify turns raw message content into activity types, detected
// technologies, problem/solution/learning phrases and topic candidates using
// fixed keyword heuristics. It is stateless after construction and total:
// every function returns a well-defined value for any input.
package classify

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

// Classifier is the keyword-driven content classification engine.
type Classifier struct {
	techKeywords       []string
	problemIndicators  []string
	solutionIndicators []string
	learningIndicators []string
}

// New builds a Classifier with the standard keyword tables.
func New() *Classifier {
	return &Classifier{
		techKeywords:       techKeywords,
		problemIndicators:  problemIndicators,
		solutionIndicators: solutionIndicators,
		learningIndicators: learningIndicators,
	}
}

// FlattenContent reduces message content to one flat string. Plain text is
// returned as-is; block content concatenates all text fields in order,
// separated by a single space, skipping blocks without text.
func FlattenContent(c types.MessageContent) string {
	if c.Blocks == nil {
		return c.Text
	}
	var parts []string
	for _, block := range c.Blocks {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, " ")
}

// DetectActivity classifies a user message into its dominant activity.
// The checks run in a fixed priority order, first match wins: a message
// containing both "implement" and "fix" is Coding, not Debugging.
func (c *Classifier) DetectActivity(content string) types.ActivityType {
	lower := strings.ToLower(content)
	switch {
	case containsAny(lower, []string{"implement", "write", "create", "add"}):
		return types.ActivityCoding
	case containsAny(lower, []string{"debug", "fix", "error", "bug"}):
		return types.ActivityDebugging
	case containsAny(lower, []string{"plan", "design", "architect"}):
		return types.ActivityPlanning
	case containsAny(lower, []string{"research", "investigate", "analyze"}):
		return types.ActivityResearch
	case containsAny(lower, []string{"document", "readme", "comment"}):
		return types.ActivityDocumentation
	case containsAny(lower, []string{"learn", "understand", "explain"}):
		return types.ActivityLearning
	default:
		return types.ActivityOther
	}
}

// DetectTechnologies returns every configured technology term that appears
// in the content, in table order.
func (c *Classifier) DetectTechnologies(content string) []string {
	lower := strings.ToLower(content)
	var techs []string
	for _, tech := range c.techKeywords {
		if strings.Contains(lower, tech) {
			techs = append(techs, tech)
		}
	}
	return techs
}

// ExtractKeyPhrase picks the first period-delimited sentence between 11 and
// maxLength characters. If no sentence qualifies, the whole text is returned
// when it fits, or truncated to maxLength characters with an ellipsis.
func (c *Classifier) ExtractKeyPhrase(text string, maxLength int) string {
	for _, sentence := range strings.Split(text, ".") {
		s := strings.TrimSpace(sentence)
		if n := utf8.RuneCountInString(s); n > 10 && n <= maxLength {
			return s
		}
	}
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	return string([]rune(text)[:maxLength]) + "..."
}

// ExtractTopics emits topic candidates from one message: every adjacent
// two-word phrase containing an action term, plus single words that are
// known technologies or look like identifiers/proper nouns. Duplicates are
// kept; callers rank by frequency, not set membership.
func (c *Classifier) ExtractTopics(content string) []string {
	lower := strings.ToLower(content)
	var words []string
	for _, w := range strings.Fields(lower) {
		if len(w) > 3 {
			words = append(words, w)
		}
	}

	var topics []string
	for i := 0; i+1 < len(words); i++ {
		phrase := words[i] + " " + words[i+1]
		if containsAny(phrase, topicActionTerms) {
			topics = append(topics, phrase)
		}
	}
	for _, w := range words {
		if c.isImportantWord(w) {
			topics = append(topics, w)
		}
	}
	return topics
}

func (c *Classifier) isImportantWord(word string) bool {
	if slices.Contains(c.techKeywords, word) {
		return true
	}
	return len(word) > 6 && !isASCIILower(word)
}

func isASCIILower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// CategorizeProblem maps content to a problem category label, or "" when the
// content is not a problem statement. The category chains are checked in a
// fixed priority order.
func (c *Classifier) CategorizeProblem(content string) string {
	lower := strings.ToLower(content)
	switch {
	case containsAny(lower, []string{"error", "exception", "crash"}):
		return "Runtime Error"
	case containsAny(lower, []string{"compile", "build", "syntax"}):
		return "Build/Compile Issue"
	case containsAny(lower, []string{"performance", "slow", "optimize"}):
		return "Performance Issue"
	case containsAny(lower, []string{"config", "setup", "install"}):
		return "Configuration Issue"
	case containsAny(lower, []string{"design", "architecture", "pattern"}):
		return "Design Question"
	case containsAny(lower, c.problemIndicators):
		return "General Problem"
	default:
		return ""
	}
}

// IsComplexDiscussion reports whether content is a long message touching an
// architectural depth term.
func (c *Classifier) IsComplexDiscussion(content string) bool {
	if len(content) <= 500 {
		return false
	}
	return containsAny(strings.ToLower(content), depthTerms)
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
