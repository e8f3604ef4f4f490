package domain

import (
	"fmt"
	"strings"
)

// Direction is the head movement applied after a write.
// Its value is the offset added to the head position.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// ParseDirection maps a direction token to a Direction.
// Only its first letter counts, so "R" and "Right" are the same move.
func ParseDirection(s string) (Direction, error) {
	switch {
	case strings.HasPrefix(s, "L"):
		return Left, nil
	case strings.HasPrefix(s, "R"):
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Key identifies a rule: the current state and the symbol under the head.
type Key struct {
	State State
	Read  Symbol
}

// Action is what the machine does once a rule matches.
type Action struct {
	Next  State
	Write Symbol
	Move  Direction
}

// Transition defines a rule (from, read) -> (next, write, move).
type Transition struct {
	Key
	Action

	// Line is the 1-based source line the rule was declared on, 0 if unknown.
	Line int `json:"-" yaml:"-"`
}

func (t Transition) String() string {
	return fmt.Sprintf("%d %c %d %c %s", t.State, t.Read, t.Next, t.Write, t.Move)
}
