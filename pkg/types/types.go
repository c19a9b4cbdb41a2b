package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EntryType distinguishes the two conversational roles in a transcript.
type EntryType string

const (
	EntryTypeUser      EntryType = "user"
	EntryTypeAssistant EntryType = "assistant"
)

// LogEntry is a single parsed line of a Claude Code transcript.
// Entries are immutable once parsed; the analysis engine only reads them.
type LogEntry struct {
	ParentUUID    *uuid.UUID      `json:"parentUuid"`
	IsSidechain   bool            `json:"isSidechain"`
	UserType      string          `json:"userType"`
	CWD           string          `json:"cwd"`
	SessionID     uuid.UUID       `json:"sessionId"`
	Version       string          `json:"version"`
	Type          EntryType       `json:"type"`
	Message       Message         `json:"message"`
	UUID          uuid.UUID       `json:"uuid"`
	Timestamp     time.Time       `json:"timestamp"`
	RequestID     string          `json:"requestId,omitempty"`
	ToolUseResult json.RawMessage `json:"toolUseResult,omitempty"`
}

// Message is the message body of a log entry.
type Message struct {
	Role         string         `json:"role"`
	Content      MessageContent `json:"content"`
	ID           string         `json:"id,omitempty"`
	Model        string         `json:"model,omitempty"`
	StopReason   string         `json:"stop_reason,omitempty"`
	StopSequence string         `json:"stop_sequence,omitempty"`
	Usage        *Usage         `json:"usage,omitempty"`
}

// MessageContent is either a plain string or an ordered list of content
// blocks. Exactly one of Text/Blocks carries the payload.
type MessageContent struct {
	Text   string
	Blocks []ContentBlock
}

// TextContent builds a plain-string message content.
func TextContent(s string) MessageContent {
	return MessageContent{Text: s}
}

func (c *MessageContent) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.Text)
	}
	return json.Unmarshal(data, &c.Blocks)
}

func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.Blocks != nil {
		return json.Marshal(c.Blocks)
	}
	return json.Marshal(c.Text)
}

// ContentBlock is one element of a block-structured message body.
// Only Text participates in analysis; the rest is carried through untouched.
type ContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	Thinking  string          `json:"thinking,omitempty"`
	Signature string          `json:"signature,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
}

// Usage holds token accounting reported by the assistant.
type Usage struct {
	InputTokens              int    `json:"input_tokens,omitempty"`
	OutputTokens             int    `json:"output_tokens,omitempty"`
	CacheCreationInputTokens int    `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     int    `json:"cache_read_input_tokens,omitempty"`
	ServiceTier              string `json:"service_tier,omitempty"`
}

// WorkSession is one contiguous run of entries that belong together by
// timing, session ID and project. StartTime and EndTime always equal the
// first and last entry timestamps and Entries is never empty.
type WorkSession struct {
	SessionID         uuid.UUID       `json:"session_id"`
	ProjectPath       string          `json:"project_path"`
	StartTime         time.Time       `json:"start_time"`
	EndTime           time.Time       `json:"end_time"`
	Entries           []LogEntry      `json:"-"`
	TotalMessages     int             `json:"total_messages"`
	UserMessages      int             `json:"user_messages"`
	AssistantMessages int             `json:"assistant_messages"`
	Summary           *SessionSummary `json:"summary,omitempty"`
}

// Duration returns the wall-clock span of the session.
func (s *WorkSession) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// SessionSummary is the classified view of one session.
//
// MainTopics and TechnologiesMentioned are sorted, deduplicated display
// lists; TopicCounts and TechCounts are the frequency maps behind them.
// Both views always share the same key set: the display lists are derived
// from the maps, and downstream aggregation ranks by the counts.
type SessionSummary struct {
	MainTopics            []string       `json:"main_topics"`
	KeyDiscussions        []string       `json:"key_discussions"`
	TechnologiesMentioned []string       `json:"technologies_mentioned"`
	ProblemsAddressed     []string       `json:"problems_addressed"`
	SolutionsProposed     []string       `json:"solutions_proposed"`
	LearningMoments       []string       `json:"learning_moments"`
	OverallSummary        string         `json:"overall_summary"`
	TopicCounts           map[string]int `json:"-"`
	TechCounts            map[string]int `json:"-"`
}

// ProjectStats accumulates per-project numbers across sessions.
type ProjectStats struct {
	ProjectName   string         `json:"project_name"`
	TotalSessions int            `json:"total_sessions"`
	TotalMessages int            `json:"total_messages"`
	WorkTime      time.Duration  `json:"work_time"`
	ActivityTypes map[string]int `json:"activity_types"`
	// MostActiveDay is a last-write-wins heuristic: the start of the most
	// recently started session on a new calendar day. Real per-day message
	// counts are not tracked.
	MostActiveDay *time.Time     `json:"most_active_day,omitempty"`
	TopicAnalysis *TopicAnalysis `json:"topic_analysis,omitempty"`
}

// TopicAnalysis is the frequency-ranked topic view of one project.
type TopicAnalysis struct {
	PrimaryTopics        []string       `json:"primary_topics"`
	SecondaryTopics      []string       `json:"secondary_topics"`
	TechnicalStack       []string       `json:"technical_stack"`
	ProblemCategories    map[string]int `json:"problem_categories"`
	SolutionPatterns     []string       `json:"solution_patterns"`
	ComplexityIndicators []string       `json:"complexity_indicators"`
}

// TopicCount pairs a topic with its mention count.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// ConversationSummary is the global fold over all session summaries.
type ConversationSummary struct {
	TotalTopics          int            `json:"total_topics"`
	MostDiscussedTopics  []TopicCount   `json:"most_discussed_topics"`
	TechnologyUsage      map[string]int `json:"technology_usage"`
	CommonProblems       []string       `json:"common_problems"`
	LearningProgression  []string       `json:"learning_progression"`
	ProductivityInsights []string       `json:"productivity_insights"`
	OverallThemes        []string       `json:"overall_themes"`
}

// TimeRange is the inclusive [Start, End] span of the analyzed entries.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WorkAnalysis is the root result of one analysis run.
type WorkAnalysis struct {
	Sessions            []WorkSession            `json:"sessions"`
	ProjectStats        map[string]*ProjectStats `json:"project_stats"`
	TimeRange           TimeRange                `json:"time_range"`
	TotalSessions       int                      `json:"total_sessions"`
	TotalMessages       int                      `json:"total_messages"`
	TotalWorkTime       time.Duration            `json:"total_work_time"`
	ConversationSummary *ConversationSummary     `json:"conversation_summary,omitempty"`
}
