package compiler

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/domain"
)

// Parser converts descriptions in the five-section text format into a Definition.
//
// The sections, one per line, are: alphabet, blank symbol, accepting states,
// initial state, followed by one transition per line ("state symbol state symbol direction").
// Header lines are taken by position, so '#' may be a symbol there. Among transitions, whose
// first token must be a state number, lines starting with '#' are comments and empty lines
// are ignored.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

type line struct {
	no     int
	fields []string
}

// Parse reads a whole description. Errors carry the offending line number.
func (p *Parser) Parse(data []byte) (*domain.Definition, error) {
	lines, err := p.split(data)
	if err != nil {
		return nil, err
	}

	def := &domain.Definition{}
	next := func() (line, bool) {
		if len(lines) == 0 {
			return line{}, false
		}
		l := lines[0]
		lines = lines[1:]
		return l, true
	}

	// 1. Alphabet
	l, ok := next()
	if !ok {
		return nil, &domain.DefinitionError{Field: "alphabet", Err: fmt.Errorf("no alphabet line")}
	}
	def.Alphabet = domain.NewAlphabet(symbols(l.fields)...)

	// 2. Blank
	l, ok = next()
	if !ok || len(l.fields) == 0 {
		return nil, &domain.DefinitionError{Line: l.no, Field: "blank", Err: domain.ErrMissingBlank}
	}
	def.Blank, def.HasBlank = firstRune(l.fields[0]), true

	// 3. Accepting states
	l, ok = next()
	if !ok {
		return nil, &domain.DefinitionError{Field: "accepting", Err: fmt.Errorf("no accepting states line")}
	}
	def.Accepting = domain.NewStateSet()
	for _, f := range l.fields {
		if f == emptySet {
			continue
		}
		s, err := parseState(f)
		if err != nil {
			return nil, &domain.DefinitionError{Line: l.no, Field: "accepting", Err: err}
		}
		def.Accepting[s] = struct{}{}
	}

	// 4. Initial state
	l, ok = next()
	if !ok || len(l.fields) == 0 {
		return nil, &domain.DefinitionError{Line: l.no, Field: "initial", Err: domain.ErrMissingInitialState}
	}
	if def.Initial, err = parseState(l.fields[0]); err != nil {
		return nil, &domain.DefinitionError{Line: l.no, Field: "initial", Err: err}
	}
	def.HasInitial = true

	// 5. Transitions
	for l, ok = next(); ok; l, ok = next() {
		if len(l.fields) == 0 || strings.HasPrefix(l.fields[0], "#") {
			continue
		}
		t, err := ParseRule(l.fields)
		if err != nil {
			return nil, &domain.DefinitionError{Line: l.no, Field: "transition", Err: err}
		}
		t.Line = l.no
		def.Transitions = append(def.Transitions, t)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// split tokenizes the input line by line.
func (p *Parser) split(data []byte) ([]line, error) {
	var lines []line
	sc := bufio.NewScanner(bytes.NewReader(data))
	for no := 1; sc.Scan(); no++ {
		lines = append(lines, line{no: no, fields: strings.Fields(sc.Text())})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read description: %w", err)
	}
	return lines, nil
}

// emptySet may stand in for an empty accepting line.
const emptySet = "λ"

// ParseRule parses the five fields of a transition.
func ParseRule(fields []string) (domain.Transition, error) {
	if len(fields) != 5 {
		return domain.Transition{}, fmt.Errorf("%w: expected 5 fields, got %d", domain.ErrMalformedRule, len(fields))
	}

	from, err := parseState(fields[0])
	if err != nil {
		return domain.Transition{}, fmt.Errorf("current state: %w", err)
	}
	next, err := parseState(fields[2])
	if err != nil {
		return domain.Transition{}, fmt.Errorf("next state: %w", err)
	}
	move, err := domain.ParseDirection(fields[4])
	if err != nil {
		return domain.Transition{}, err
	}

	return domain.Transition{
		Key:    domain.Key{State: from, Read: firstRune(fields[1])},
		Action: domain.Action{Next: next, Write: firstRune(fields[3]), Move: move},
	}, nil
}

func parseState(s string) (domain.State, error) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidState, s)
	}
	return domain.State(n), nil
}

// symbols takes the first rune of every token.
func symbols(fields []string) []domain.Symbol {
	out := make([]domain.Symbol, 0, len(fields))
	for _, f := range fields {
		out = append(out, firstRune(f))
	}
	return out
}

func firstRune(s string) domain.Symbol {
	r, _ := utf8.DecodeRuneInString(s)
	return domain.Symbol(r)
}
