package model

// Priority ranks a task or event. Stored as its lowercase name.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned when a draft leaves the priority empty.
const DefaultPriority = PriorityMedium

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Badge returns the board badge variant used to render the priority.
func (p Priority) Badge() string {
	switch p {
	case PriorityHigh:
		return "destructive"
	case PriorityMedium:
		return "secondary"
	default:
		return "outline"
	}
}

// Color returns the calendar background colour for the priority.
func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "rgb(239 68 68)"
	case PriorityMedium:
		return "rgb(59 130 246)"
	default:
		return "rgb(156 163 175)"
	}
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}
