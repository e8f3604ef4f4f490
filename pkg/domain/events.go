package domain

// TapeView is a read-only view of the tape during a hook call.
// It is only valid for the duration of the call.
type TapeView interface {
	Contents() []Symbol
	Left() int
	Head() int
}

// StepEvent describes one applied transition.
type StepEvent struct {
	Step   int    `json:"step"` // 1-based
	State  State  `json:"state"`
	Read   Symbol `json:"read"`
	Action Action `json:"action"`
	Head   int    `json:"head"` // head position before the move

	Tape TapeView `json:"-"` // tape before the write
}

// HaltEvent describes the end of a run.
type HaltEvent struct {
	State    State `json:"state"`
	Accepted bool  `json:"accepted"`
	Steps    int   `json:"steps"`
	Cells    int   `json:"cells"` // size of the touched tape span

	Tape TapeView `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks observe the run; they cannot alter it.
type LifecycleHooks struct {
	OnStep func(*StepEvent)
	OnHalt func(*HaltEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: chain(h.OnStep, other.OnStep),
		OnHalt: chain(h.OnHalt, other.OnHalt),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
