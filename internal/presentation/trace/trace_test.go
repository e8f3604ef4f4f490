package trace_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/presentation/trace"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
)

type fakeTape struct {
	cells []domain.Symbol
	left  int
	head  int
}

func (f fakeTape) Contents() []domain.Symbol { return f.cells }
func (f fakeTape) Left() int                 { return f.left }
func (f fakeTape) Head() int                 { return f.head }

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		tape  fakeTape
		state domain.State
		want  string
	}{
		{"start", fakeTape{domain.SymbolsOf("test"), 0, 0}, 1, "(1)test"},
		{"middle", fakeTape{domain.SymbolsOf("nest"), 0, 1}, 2, "n(2)est"},
		{"negative left", fakeTape{domain.SymbolsOf("_ab"), -1, -1}, 9, "(9)_ab"},
		{"last cell", fakeTape{domain.SymbolsOf("ab_"), 0, 2}, 0, "ab(0)_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trace.Describe(tt.tape, tt.state))
		})
	}
}

func TestPrinter_Hooks(t *testing.T) {
	var buf bytes.Buffer
	p := trace.NewPrinter(&buf)
	hooks := p.Hooks()

	hooks.OnStep(&domain.StepEvent{State: 1, Tape: fakeTape{domain.SymbolsOf("ab"), 0, 0}})
	hooks.OnHalt(&domain.HaltEvent{State: 3, Tape: fakeTape{domain.SymbolsOf("bb"), 0, 1}})

	// A buffer is never a terminal, so no escape codes.
	assert.Equal(t, "(1)ab\nb(3)b\n", buf.String())
}

func TestRecorder(t *testing.T) {
	var rec trace.Recorder
	hooks := rec.Hooks()
	hooks.OnStep(&domain.StepEvent{State: 4, Tape: fakeTape{domain.SymbolsOf("x"), 0, 0}})
	hooks.OnHalt(&domain.HaltEvent{State: 5, Tape: fakeTape{domain.SymbolsOf("yx"), -1, -1}})

	assert.Equal(t, []string{"(4)x", "(5)yx"}, rec.Lines)
}

func TestRecorder_HeadLeftOfInput(t *testing.T) {
	// Steps off the left edge of the input, marks the new cell and halts.
	var rec trace.Recorder
	m, err := runtime.NewMachine(&domain.Definition{
		Alphabet:   domain.NewAlphabet('1', '#'),
		Blank:      '_',
		HasBlank:   true,
		Accepting:  domain.NewStateSet(1),
		HasInitial: true,
		Transitions: []domain.Transition{
			{Key: domain.Key{State: 0, Read: '1'}, Action: domain.Action{Next: 0, Write: '1', Move: domain.Left}},
			{Key: domain.Key{State: 0, Read: '_'}, Action: domain.Action{Next: 1, Write: '#', Move: domain.Right}},
		},
	}, runtime.WithHooks(rec.Hooks()))
	require.NoError(t, err)

	require.True(t, m.Run(domain.SymbolsOf("1")))
	assert.Equal(t, []string{"(0)1", "(0)_1", "#(1)1"}, rec.Lines)
}
