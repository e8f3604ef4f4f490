package domain

import (
	"slices"
	"strings"
)

// Symbol is an atomic unit of tape content.
type Symbol rune

func (s Symbol) String() string {
	return string(s)
}

// Alphabet is a finite set of tape symbols.
type Alphabet map[Symbol]struct{}

// NewAlphabet builds an alphabet from the given symbols. Duplicates collapse.
func NewAlphabet(symbols ...Symbol) Alphabet {
	a := make(Alphabet, len(symbols))
	for _, s := range symbols {
		a[s] = struct{}{}
	}
	return a
}

// Contains reports whether s belongs to the alphabet.
func (a Alphabet) Contains(s Symbol) bool {
	_, ok := a[s]
	return ok
}

// Sorted returns the members in ascending order.
func (a Alphabet) Sorted() []Symbol {
	out := make([]Symbol, 0, len(a))
	for s := range a {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// SymbolsOf maps every rune of text to a Symbol.
func SymbolsOf(text string) []Symbol {
	out := make([]Symbol, 0, len(text))
	for _, r := range text {
		out = append(out, Symbol(r))
	}
	return out
}

// Join renders symbols back to a string.
func Join(symbols []Symbol) string {
	var sb strings.Builder
	for _, s := range symbols {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}
