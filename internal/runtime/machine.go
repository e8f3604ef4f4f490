package runtime

import (
	"log/slog"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
)

// Machine is the single-tape execution engine.
// A Machine may run many inputs one after another; each Run starts from a fresh tape.
// It is not safe for concurrent use.
type Machine struct {
	def    *domain.Definition
	table  *Table
	hooks  domain.LifecycleHooks
	logger *slog.Logger

	tape   *Tape
	state  domain.State
	steps  int
	halted bool
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) MachineOption {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets the logger used for run boundaries.
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		m.logger = logger
	}
}

// NewMachine validates the definition and builds its transition table.
// Every definition problem surfaces here, so Run itself cannot fail.
func NewMachine(def *domain.Definition, opts ...MachineOption) (*Machine, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	table, err := NewTable(def.Transitions)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		def:    def,
		table:  table,
		state:  def.Initial,
		halted: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	return m, nil
}

// Run writes input onto a fresh tape and steps until no transition applies.
// It reports whether the machine halted in an accepting state.
// There is no step limit: a machine that never reaches a missing transition never returns.
func (m *Machine) Run(input []domain.Symbol) bool {
	m.tape = NewTape(m.def.Blank, input)
	m.state = m.def.Initial
	m.steps = 0
	m.halted = false

	m.logger.Debug("run started", "state", m.state, "input_len", len(input))

	for m.step() {
	}

	m.halted = true
	accepted := m.def.Accepting.Contains(m.state)

	if m.hooks.OnHalt != nil {
		m.hooks.OnHalt(&domain.HaltEvent{
			State:    m.state,
			Accepted: accepted,
			Steps:    m.steps,
			Cells:    m.tape.Len(),
			Tape:     m.tape,
		})
	}
	m.logger.Debug("run halted", "state", m.state, "accepted", accepted, "steps", m.steps)

	return accepted
}

// step applies one transition. It returns false when none matches.
func (m *Machine) step() bool {
	read := m.tape.Read()
	action, ok := m.table.Lookup(m.state, read)
	if !ok {
		return false
	}

	m.steps++
	if m.hooks.OnStep != nil {
		m.hooks.OnStep(&domain.StepEvent{
			Step:   m.steps,
			State:  m.state,
			Read:   read,
			Action: action,
			Head:   m.tape.Head(),
			Tape:   m.tape,
		})
	}

	m.tape.Write(action.Write)
	m.tape.Move(action.Move)
	m.state = action.Next
	return true
}

// Result snapshots the last run.
func (m *Machine) Result() *domain.Result {
	return &domain.Result{
		Accepted: m.halted && m.tape != nil && m.def.Accepting.Contains(m.state),
		State:    m.state,
		Tape:     domain.Join(m.Tape()),
		Head:     m.Head(),
		Steps:    m.steps,
	}
}

// State returns the current (or halting) state.
func (m *Machine) State() domain.State {
	return m.state
}

// Tape returns the touched span of the last run's tape.
func (m *Machine) Tape() []domain.Symbol {
	if m.tape == nil {
		return nil
	}
	return m.tape.Contents()
}

// Head returns the head position of the last run.
func (m *Machine) Head() int {
	if m.tape == nil {
		return 0
	}
	return m.tape.Head()
}

// Steps returns the number of transitions applied by the last run.
func (m *Machine) Steps() int {
	return m.steps
}

// Halted reports whether the last run has finished.
func (m *Machine) Halted() bool {
	return m.halted
}

// Definition returns the machine description.
func (m *Machine) Definition() *domain.Definition {
	return m.def
}
