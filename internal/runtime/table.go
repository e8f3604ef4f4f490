package runtime

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Table maps (state, symbol) to the action to apply.
// It is built once and never mutated afterwards.
type Table struct {
	rules map[domain.Key]domain.Action
}

// NewTable builds a transition table.
// Two rules sharing the same key are rejected with a *domain.DefinitionError.
func NewTable(rules []domain.Transition) (*Table, error) {
	t := &Table{rules: make(map[domain.Key]domain.Action, len(rules))}
	lines := make(map[domain.Key]int, len(rules))

	for _, r := range rules {
		if _, exists := t.rules[r.Key]; exists {
			err := fmt.Errorf("%w: state %d symbol %q", domain.ErrDuplicateTransition, r.State, r.Read)
			if first := lines[r.Key]; first > 0 {
				err = fmt.Errorf("%w (first declared on line %d)", err, first)
			}
			return nil, &domain.DefinitionError{Line: r.Line, Field: "transition", Err: err}
		}
		t.rules[r.Key] = r.Action
		lines[r.Key] = r.Line
	}

	return t, nil
}

// Lookup returns the action for the given configuration.
// A false result means no rule applies, which halts the machine.
func (t *Table) Lookup(state domain.State, read domain.Symbol) (domain.Action, bool) {
	a, ok := t.rules[domain.Key{State: state, Read: read}]
	return a, ok
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}
