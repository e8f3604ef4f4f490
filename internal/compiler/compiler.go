package compiler

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Compile parses a description in the given format.
func Compile(format domain.Format, data []byte) (*domain.Definition, error) {
	switch format {
	case domain.FormatText, "":
		return NewParser().Parse(data)
	case domain.FormatYAML:
		return ParseYAML(data)
	}
	return nil, fmt.Errorf("unsupported description format %q", format)
}

// ParseInput maps an input line to tape symbols.
// Every symbol must be in the alphabet or be the blank; anything else is
// reported as a *domain.InputError.
func ParseInput(def *domain.Definition, text string) ([]domain.Symbol, error) {
	input := domain.SymbolsOf(text)
	for i, s := range input {
		if !def.IsTapeSymbol(s) {
			return nil, &domain.InputError{Position: i, Symbol: s}
		}
	}
	return input, nil
}
