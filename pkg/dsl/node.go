package dsl

import "github.com/aretw0/turing/pkg/domain"

// StateBuilder provides a fluent API for configuring a state and its rules.
type StateBuilder struct {
	state     domain.State
	accepting bool
	rules     []domain.Transition
	builder   *Builder
}

// Initial marks the state as the one runs start in.
func (s *StateBuilder) Initial() *StateBuilder {
	state := s.state
	s.builder.initial = &state
	return s
}

// Accepting marks the state as accepting.
func (s *StateBuilder) Accepting() *StateBuilder {
	s.accepting = true
	return s
}

// On adds a rule: reading read in this state writes write, moves the head and enters next.
func (s *StateBuilder) On(read, write domain.Symbol, move domain.Direction, next domain.State) *StateBuilder {
	s.rules = append(s.rules, domain.Transition{
		Key:    domain.Key{State: s.state, Read: read},
		Action: domain.Action{Next: next, Write: write, Move: move},
	})
	return s
}

// Right is On with a move to the right.
func (s *StateBuilder) Right(read, write domain.Symbol, next domain.State) *StateBuilder {
	return s.On(read, write, domain.Right, next)
}

// Left is On with a move to the left.
func (s *StateBuilder) Left(read, write domain.Symbol, next domain.State) *StateBuilder {
	return s.On(read, write, domain.Left, next)
}

// Build returns the rules of the state.
// This is primarily used by the Builder, but exposed for advanced usage.
func (s *StateBuilder) Build() []domain.Transition {
	return s.rules
}
