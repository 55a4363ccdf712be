package task

// Window partitions the settlement day for behavior scheduling.
type Window int

const (
	// WorkHours covers an agent's duty shift.
	WorkHours Window = iota

	// OffHours covers rest and personal time.
	OffHours

	// AnyHours behaviors are schedulable in both windows.
	AnyHours
)

func (w Window) String() string {
	switch w {
	case WorkHours:
		return "WORK_HOURS"
	case OffHours:
		return "OFF_HOURS"
	case AnyHours:
		return "ANY_HOURS"
	default:
		return "UNKNOWN"
	}
}

// Agent is the per-settler view a behavior scores against.
type Agent interface {
	Name() string

	// JobModifier weights a behavior by the agent's role. 1 is neutral.
	JobModifier(behavior string) float64
}

// MetaTask is a behavior descriptor: a named behavior, the day window it is
// schedulable in, and its own desirability rule. Implementations must be
// safe for concurrent Score calls; a MetaTask instance is shared across all
// agents and, for AnyHours behaviors, across both window partitions.
type MetaTask interface {
	Name() string
	Window() Window

	// Score returns the behavior's selection weight for an agent this
	// tick. Non-positive or NaN means not applicable.
	Score(a Agent) float64
}
