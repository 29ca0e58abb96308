package convert

// State is a step of a conversion run.
type State int

const (
	StateAwaitInput State = iota
	StateAwaitFormatChoice
	StateAwaitPrecisionChoice
	StateExporting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAwaitInput:
		return "await_input"
	case StateAwaitFormatChoice:
		return "await_format_choice"
	case StateAwaitPrecisionChoice:
		return "await_precision_choice"
	case StateExporting:
		return "exporting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible from s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
