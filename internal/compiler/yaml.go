package compiler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
)

// ParseYAML reads a structured description:
//
//	name: swap
//	alphabet: [t, e, s, n, i]
//	blank: _
//	accepting: [0]
//	initial: 1
//	transitions:
//	  - 1 t 2 n R
//
// Scalars are weakly typed, so `initial: "1"` and `alphabet: [0, 1]` are accepted.
func ParseYAML(data []byte) (*domain.Definition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &domain.DefinitionError{Field: "yaml", Err: err}
	}
	if len(root.Content) == 0 {
		return nil, &domain.DefinitionError{Field: "yaml", Err: fmt.Errorf("empty document")}
	}

	var raw map[string]any
	if err := root.Decode(&raw); err != nil {
		return nil, &domain.DefinitionError{Field: "yaml", Err: err}
	}

	var doc dto.Definition
	if err := decodeMap(raw, &doc); err != nil {
		return nil, &domain.DefinitionError{Field: "yaml", Err: err}
	}

	return FromDTO(&doc, ruleLines(root.Content[0]))
}

// FromDTO converts the structured form into a Definition.
// lines, when not nil, holds the source line of each transition.
func FromDTO(doc *dto.Definition, lines []int) (*domain.Definition, error) {
	def := &domain.Definition{
		Name:        doc.Name,
		Description: strings.TrimSpace(doc.Description),
		Alphabet:    domain.NewAlphabet(symbols(doc.Alphabet)...),
		Accepting:   domain.NewStateSet(),
	}

	if doc.Blank == "" {
		return nil, &domain.DefinitionError{Field: "blank", Err: domain.ErrMissingBlank}
	}
	def.Blank, def.HasBlank = firstRune(doc.Blank), true

	if doc.Initial == nil {
		return nil, &domain.DefinitionError{Field: "initial", Err: domain.ErrMissingInitialState}
	}
	def.Initial, def.HasInitial = domain.State(*doc.Initial), true

	for _, s := range doc.Accepting {
		def.Accepting[domain.State(s)] = struct{}{}
	}

	for i, text := range doc.Transitions {
		no := 0
		if i < len(lines) {
			no = lines[i]
		}
		t, err := ParseRule(strings.Fields(text))
		if err != nil {
			return nil, &domain.DefinitionError{Line: no, Field: "transition", Err: err}
		}
		t.Line = no
		def.Transitions = append(def.Transitions, t)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// ToDTO converts a Definition back into its structured form.
// Symbols and states come out sorted; rules keep their declaration order.
func ToDTO(def *domain.Definition) *dto.Definition {
	initial := uint(def.Initial)
	doc := &dto.Definition{
		Name:        def.Name,
		Description: def.Description,
		Alphabet:    make([]string, 0, len(def.Alphabet)),
		Blank:       def.Blank.String(),
		Accepting:   make([]uint, 0, len(def.Accepting)),
		Initial:     &initial,
		Transitions: make([]string, 0, len(def.Transitions)),
	}
	for _, s := range def.Alphabet.Sorted() {
		doc.Alphabet = append(doc.Alphabet, s.String())
	}
	for _, s := range def.Accepting.Sorted() {
		doc.Accepting = append(doc.Accepting, uint(s))
	}
	for _, t := range def.Transitions {
		doc.Transitions = append(doc.Transitions, t.String())
	}
	return doc
}

// EncodeYAML writes def in the YAML description format.
func EncodeYAML(def *domain.Definition) ([]byte, error) {
	return yaml.Marshal(ToDTO(def))
}

func decodeMap(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       rejectNegativeStates,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// rejectNegativeStates stops weak typing from wrapping negative integers into uint.
func rejectNegativeStates(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Uint {
		return data, nil
	}
	if v, ok := data.(int); ok && v < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidState, v)
	}
	return data, nil
}

// ruleLines finds the line of every item of the top-level "transitions" sequence.
func ruleLines(doc *yaml.Node) []int {
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		if key.Value != "transitions" || value.Kind != yaml.SequenceNode {
			continue
		}
		lines := make([]int, len(value.Content))
		for j, item := range value.Content {
			lines[j] = item.Line
		}
		return lines
	}
	return nil
}
