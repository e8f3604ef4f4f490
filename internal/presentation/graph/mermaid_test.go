package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
)

func rule(from domain.State, read domain.Symbol, next domain.State, write domain.Symbol, move domain.Direction) domain.Transition {
	return domain.Transition{
		Key:    domain.Key{State: from, Read: read},
		Action: domain.Action{Next: next, Write: write, Move: move},
	}
}

func parity() *domain.Definition {
	return &domain.Definition{
		Alphabet:   domain.NewAlphabet('0', '1'),
		Blank:      '_',
		HasBlank:   true,
		Accepting:  domain.NewStateSet(0),
		Initial:    0,
		HasInitial: true,
		Transitions: []domain.Transition{
			rule(0, '0', 0, '0', domain.Right),
			rule(0, '1', 1, '1', domain.Right),
			rule(1, '0', 1, '0', domain.Right),
			rule(1, '1', 0, '1', domain.Right),
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		def      *domain.Definition
		contains []string
	}{
		{
			name: "State Shapes",
			def:  parity(),
			contains: []string{
				"graph LR\n",
				"start(( )) --> q0",
				`q0((("0")))`,
				`q1("1")`,
			},
		},
		{
			name: "Merged Labels",
			def:  parity(),
			contains: []string{
				`q0 -- "0/0,R" --> q0`,
				`q0 -- "1/1,R" --> q1`,
				`q1 -- "0/0,R" --> q1`,
			},
		},
		{
			name: "Initial Shape",
			def: &domain.Definition{
				Blank: '_', HasBlank: true, Initial: 3, HasInitial: true,
				Accepting: domain.NewStateSet(),
				Transitions: []domain.Transition{
					rule(3, 'a', 3, 'b', domain.Right),
					rule(3, 'b', 3, 'a', domain.Right),
				},
			},
			contains: []string{
				`q3(("3"))`,
				`q3 -- "a/b,R<br/>b/a,R" --> q3`,
			},
		},
		{
			name: "Label Escaping",
			def: &domain.Definition{
				Blank: '_', HasBlank: true, HasInitial: true,
				Accepting: domain.NewStateSet(),
				Transitions: []domain.Transition{
					rule(0, '"', 1, '#', domain.Left),
				},
			},
			contains: []string{
				`q0 -- "#quot;/#35;,L" --> q1`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.def, nil)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			assert.NotContains(t, got, "classDef")
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	var overlay graph.Overlay
	hooks := overlay.Hooks()
	hooks.OnStep(&domain.StepEvent{State: 0})
	hooks.OnStep(&domain.StepEvent{State: 1})
	hooks.OnStep(&domain.StepEvent{State: 0})
	hooks.OnHalt(&domain.HaltEvent{State: 1})

	got := graph.GenerateMermaid(parity(), &overlay)

	assert.Contains(t, got, "class q0 visited;")
	assert.Contains(t, got, "class q1 current;")
	assert.NotContains(t, got, "class q1 visited;")
	assert.Equal(t, 1, strings.Count(got, "class q0 visited;"))
}
