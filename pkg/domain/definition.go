package domain

import "fmt"

// Definition is a fully parsed machine description.
// It is treated as immutable once handed to the engine.
type Definition struct {
	Name        string
	Description string

	Alphabet  Alphabet
	Blank     Symbol
	Accepting StateSet
	Initial   State

	Transitions []Transition

	// HasBlank and HasInitial record whether the mandatory sections were present.
	// The zero values of Blank and Initial are otherwise indistinguishable from real values.
	HasBlank   bool
	HasInitial bool
}

// Symbols returns the alphabet plus the blank symbol.
func (d *Definition) Symbols() Alphabet {
	out := make(Alphabet, len(d.Alphabet)+1)
	for s := range d.Alphabet {
		out[s] = struct{}{}
	}
	out[d.Blank] = struct{}{}
	return out
}

// IsTapeSymbol reports whether s may appear on the tape.
func (d *Definition) IsTapeSymbol(s Symbol) bool {
	return s == d.Blank || d.Alphabet.Contains(s)
}

// Validate checks the mandatory sections and that every rule reads and writes
// tape symbols. Duplicate rules are detected when the transition table is built.
func (d *Definition) Validate() error {
	if !d.HasBlank {
		return &DefinitionError{Field: "blank", Err: ErrMissingBlank}
	}
	if !d.HasInitial {
		return &DefinitionError{Field: "initial", Err: ErrMissingInitialState}
	}
	for _, t := range d.Transitions {
		if t.Move != Left && t.Move != Right {
			return &DefinitionError{Line: t.Line, Field: "transition", Err: ErrInvalidDirection}
		}
		if !d.IsTapeSymbol(t.Read) {
			return &DefinitionError{Line: t.Line, Field: "transition", Err: fmt.Errorf("%w: read symbol %q", ErrUnknownSymbol, t.Read)}
		}
		if !d.IsTapeSymbol(t.Write) {
			return &DefinitionError{Line: t.Line, Field: "transition", Err: fmt.Errorf("%w: write symbol %q", ErrUnknownSymbol, t.Write)}
		}
	}
	return nil
}

// Result is the outcome of a halted run.
type Result struct {
	Accepted bool   `json:"accepted"`
	State    State  `json:"state"`
	Tape     string `json:"tape"`
	Head     int    `json:"head"`
	Steps    int    `json:"steps"`
}
