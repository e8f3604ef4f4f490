package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
)

const swapYAML = `name: swap
description: |
  Rewrites "test" into "nice" and back.
alphabet: [t, e, s, n, i, c]
blank: _
accepting: [0]
initial: 1
transitions:
  - 1 t 2 n R
  - 2 e 3 i R
  - 3 s 4 c R
  - 4 t 0 e L
  - 1 n 5 t R
  - 5 i 6 e R
  - 6 c 7 s R
  - 7 e 0 t L
  - 0 c 0 c L
  - 0 s 0 s L
`

func TestParseYAML_Swap(t *testing.T) {
	def, err := compiler.ParseYAML([]byte(swapYAML))
	require.NoError(t, err)

	text, err := compiler.NewParser().Parse([]byte(swapText))
	require.NoError(t, err)

	assert.Equal(t, "swap", def.Name)
	assert.Equal(t, `Rewrites "test" into "nice" and back.`, def.Description)
	assert.Equal(t, text.Alphabet, def.Alphabet)
	assert.Equal(t, text.Blank, def.Blank)
	assert.Equal(t, text.Accepting, def.Accepting)
	assert.Equal(t, text.Initial, def.Initial)
	require.Len(t, def.Transitions, len(text.Transitions))
	for i := range def.Transitions {
		assert.Equal(t, text.Transitions[i].Key, def.Transitions[i].Key)
		assert.Equal(t, text.Transitions[i].Action, def.Transitions[i].Action)
	}
	assert.Equal(t, 9, def.Transitions[0].Line)
}

func TestParseYAML_WeakTyping(t *testing.T) {
	def, err := compiler.ParseYAML([]byte(`
alphabet: [0, 1]
blank: "_"
accepting: ["2"]
initial: "0"
`))
	require.NoError(t, err)

	assert.Equal(t, domain.NewAlphabet('0', '1'), def.Alphabet)
	assert.Equal(t, domain.NewStateSet(2), def.Accepting)
	assert.Equal(t, domain.State(0), def.Initial)
	assert.True(t, def.HasInitial)
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
		msg  string
		line int
	}{
		{name: "empty", src: ""},
		{name: "not a mapping", src: "- a\n- b\n"},
		{name: "unknown key", src: "blank: _\ninitial: 0\ncolour: red\n"},
		{name: "missing blank", src: "initial: 0\n", err: domain.ErrMissingBlank},
		{name: "missing initial", src: "blank: _\n", err: domain.ErrMissingInitialState},
		{name: "negative state", src: "blank: _\ninitial: -1\n", msg: "invalid state"},
		{name: "bad rule", src: "blank: _\ninitial: 0\ntransitions:\n  - 0 a 1 a\n", err: domain.ErrMalformedRule, line: 4},
		{name: "undeclared symbol", src: "alphabet: [a]\nblank: _\ninitial: 0\ntransitions:\n  - 0 a 0 a R\n  - 0 _ 0 z L\n", err: domain.ErrUnknownSymbol, line: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.ParseYAML([]byte(tt.src))
			require.Error(t, err)

			var defErr *domain.DefinitionError
			require.ErrorAs(t, err, &defErr)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
			assert.Equal(t, tt.line, defErr.Line)
		})
	}
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	text, err := compiler.NewParser().Parse([]byte(swapText))
	require.NoError(t, err)
	text.Name = "swap"

	data, err := compiler.EncodeYAML(text)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alphabet: [c, e, i, n, s, t]")
	assert.Contains(t, string(data), "- 1 t 2 n R")

	back, err := compiler.ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, text.Alphabet, back.Alphabet)
	assert.Equal(t, text.Accepting, back.Accepting)
	assert.Equal(t, text.Initial, back.Initial)
	require.Len(t, back.Transitions, len(text.Transitions))
	assert.Equal(t, text.Transitions[3].Action, back.Transitions[3].Action)
}
