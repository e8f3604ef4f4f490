package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
)

// Builder manages the machine construction.
type Builder struct {
	name     string
	alphabet []domain.Symbol
	blank    *domain.Symbol
	initial  *domain.State
	states   map[domain.State]*StateBuilder
	order    []domain.State
}

// New creates a new machine builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[domain.State]*StateBuilder),
	}
}

// Alphabet adds every rune of symbols to the alphabet.
func (b *Builder) Alphabet(symbols string) *Builder {
	b.alphabet = append(b.alphabet, domain.SymbolsOf(symbols)...)
	return b
}

// Blank sets the blank symbol.
func (b *Builder) Blank(s domain.Symbol) *Builder {
	b.blank = &s
	return b
}

// Add creates a state in the machine.
// If the state already exists, it returns the existing builder.
func (b *Builder) Add(state domain.State) *StateBuilder {
	if sb, ok := b.states[state]; ok {
		return sb
	}
	sb := &StateBuilder{state: state, builder: b}
	b.states[state] = sb
	b.order = append(b.order, state)
	return sb
}

// Build assembles the Definition and checks it the way the engine will.
func (b *Builder) Build() (*domain.Definition, error) {
	def := &domain.Definition{
		Name:      b.name,
		Alphabet:  domain.NewAlphabet(b.alphabet...),
		Accepting: domain.NewStateSet(),
	}
	if b.blank != nil {
		def.Blank, def.HasBlank = *b.blank, true
	}
	if b.initial != nil {
		def.Initial, def.HasInitial = *b.initial, true
	}
	for _, state := range b.order {
		sb := b.states[state]
		if sb.accepting {
			def.Accepting[state] = struct{}{}
		}
		def.Transitions = append(def.Transitions, sb.rules...)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("machine %s: %w", b.name, err)
	}
	if _, err := runtime.NewTable(def.Transitions); err != nil {
		return nil, fmt.Errorf("machine %s: %w", b.name, err)
	}
	return def, nil
}

// Text renders the machine in the text description format.
func (b *Builder) Text() (string, error) {
	def, err := b.Build()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	symbols := make([]string, 0, len(def.Alphabet))
	for _, s := range def.Alphabet.Sorted() {
		symbols = append(symbols, s.String())
	}
	accepting := make([]string, 0, len(def.Accepting))
	for _, s := range def.Accepting.Sorted() {
		accepting = append(accepting, fmt.Sprint(s))
	}

	fmt.Fprintln(&sb, strings.Join(symbols, " "))
	fmt.Fprintln(&sb, def.Blank.String())
	fmt.Fprintln(&sb, strings.Join(accepting, " "))
	fmt.Fprintln(&sb, def.Initial)
	for _, t := range def.Transitions {
		fmt.Fprintln(&sb, t.String())
	}
	return sb.String(), nil
}

// Loader compiles the machine into a MemoryLoader holding it under its name.
func (b *Builder) Loader() (*memory.Loader, error) {
	text, err := b.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return memory.NewLoader(map[string]string{b.name: text}), nil
}
