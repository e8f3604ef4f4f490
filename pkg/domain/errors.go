package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTransition is returned when two rules share the same (state, symbol) key.
	ErrDuplicateTransition = errors.New("duplicate transition")

	// ErrMissingBlank is returned when the description does not declare a blank symbol.
	ErrMissingBlank = errors.New("missing blank symbol")

	// ErrMissingInitialState is returned when the description does not declare an initial state.
	ErrMissingInitialState = errors.New("missing initial state")

	// ErrInvalidDirection is returned for a head movement other than L or R.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidState is returned when a state is not a non-negative integer.
	ErrInvalidState = errors.New("invalid state")

	// ErrUnknownSymbol is returned for symbols outside the alphabet and the blank.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrMalformedRule is returned when a transition line does not have five fields.
	ErrMalformedRule = errors.New("malformed transition")

	// ErrDefinitionNotFound is returned when a loader has no description under the requested name.
	ErrDefinitionNotFound = errors.New("definition not found")
)

// DefinitionError reports a problem with a machine description.
// It is always raised before any run begins.
type DefinitionError struct {
	Line  int    // 1-based source line, 0 when not tied to a line
	Field string // Section of the description, e.g. "blank" or "transition"
	Err   error
}

func (e *DefinitionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// InputError reports an input symbol that the machine cannot hold on its tape.
type InputError struct {
	Position int
	Symbol   Symbol
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input position %d: %v %q", e.Position, ErrUnknownSymbol, e.Symbol)
}

func (e *InputError) Unwrap() error {
	return ErrUnknownSymbol
}
