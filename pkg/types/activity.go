package types

// ActivityType is the single dominant activity detected in a user message.
type ActivityType int

const (
	ActivityCoding ActivityType = iota
	ActivityDebugging
	ActivityPlanning
	ActivityResearch
	ActivityDocumentation
	ActivityLearning
	ActivityOther
)

func (a ActivityType) String() string {
	switch a {
	case ActivityCoding:
		return "Coding"
	case ActivityDebugging:
		return "Debugging"
	case ActivityPlanning:
		return "Planning"
	case ActivityResearch:
		return "Research"
	case ActivityDocumentation:
		return "Documentation"
	case ActivityLearning:
		return "Learning"
	default:
		return "Other"
	}
}
