package domain

import (
	"slices"
)

// State identifies a control configuration of the machine.
// The engine is agnostic to which identifiers exist: any value referenced by a rule,
// the initial state or the accepting set is legal.
type State uint

// StateSet is a set of states, e.g. the accepting states of a machine.
type StateSet map[State]struct{}

// NewStateSet builds a set from the given states.
func NewStateSet(states ...State) StateSet {
	set := make(StateSet, len(states))
	for _, s := range states {
		set[s] = struct{}{}
	}
	return set
}

// Contains reports whether s is a member. A nil set contains nothing.
func (s StateSet) Contains(state State) bool {
	_, ok := s[state]
	return ok
}

// Sorted returns the members in ascending order.
func (s StateSet) Sorted() []State {
	out := make([]State, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	slices.Sort(out)
	return out
}
