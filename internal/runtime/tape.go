package runtime

import (
	"github.com/aretw0/turing/pkg/domain"
)

// Tape is an unbounded, bidirectional sequence of symbols.
//
// Cells live in buf; origin is the index of position 0 inside buf, so position p is
// buf[origin+p]. buf grows by doubling in either direction and every cell outside the
// input is initialised with the blank. buf[lo:hi] is the span that was ever touched.
type Tape struct {
	blank  domain.Symbol
	buf    []domain.Symbol
	origin int
	lo, hi int
	head   int
}

// NewTape creates a tape holding input from position 0 onwards, head at 0.
func NewTape(blank domain.Symbol, input []domain.Symbol) *Tape {
	buf := make([]domain.Symbol, len(input))
	copy(buf, input)
	return &Tape{
		blank: blank,
		buf:   buf,
		hi:    len(input),
	}
}

// Read returns the symbol under the head.
func (t *Tape) Read() domain.Symbol {
	return t.buf[t.touch()]
}

// Write replaces the symbol under the head.
func (t *Tape) Write(s domain.Symbol) {
	t.buf[t.touch()] = s
}

// Move shifts the head by one cell. Storage grows on the next Read or Write.
func (t *Tape) Move(d domain.Direction) {
	t.head += int(d)
}

// Head returns the head position relative to the first input cell.
func (t *Tape) Head() int {
	return t.head
}

// Left returns the position of the leftmost touched cell.
func (t *Tape) Left() int {
	return t.lo - t.origin
}

// Len returns the size of the touched span.
func (t *Tape) Len() int {
	return t.hi - t.lo
}

// Contents returns the touched span, left to right.
func (t *Tape) Contents() []domain.Symbol {
	out := make([]domain.Symbol, t.hi-t.lo)
	copy(out, t.buf[t.lo:t.hi])
	return out
}

// touch makes sure the head cell is backed by storage, marks it as touched
// and returns its index in buf.
func (t *Tape) touch() int {
	i := t.origin + t.head
	if i < 0 {
		extra := max(-i, len(t.buf))
		grown := make([]domain.Symbol, extra+len(t.buf))
		fill(grown[:extra], t.blank)
		copy(grown[extra:], t.buf)
		t.buf = grown
		t.origin += extra
		t.lo += extra
		t.hi += extra
		i += extra
	}
	for i >= len(t.buf) {
		t.buf = append(t.buf, t.blank)
	}
	if i < t.lo {
		t.lo = i
	}
	if i >= t.hi {
		t.hi = i + 1
	}
	return i
}

func fill(cells []domain.Symbol, s domain.Symbol) {
	for i := range cells {
		cells[i] = s
	}
}
