package checkout

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Status is view-local and never persisted. Reason is only set when failed.
type Status struct {
	State  State
	Reason string
}

func (s Status) IsTerminal() bool {
	return s.State == StateSucceeded || s.State == StateFailed
}

func (s Status) String() string {
	if s.State == StateFailed {
		return string(s.State) + ": " + s.Reason
	}
	return string(s.State)
}
