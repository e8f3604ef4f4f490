package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Overlay contains run data to visualize on the graph.
type Overlay struct {
	Visited []domain.State
	Current domain.State
}

// Hooks returns lifecycle hooks that record a run into o.
func (o *Overlay) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			o.Visited = append(o.Visited, e.State)
		},
		OnHalt: func(e *domain.HaltEvent) {
			o.Visited = append(o.Visited, e.State)
			o.Current = e.State
		},
	}
}

type edge struct {
	from, to domain.State
}

// GenerateMermaid produces a Mermaid flowchart of the transition table.
// It applies semantic styling:
// - Initial state: ((Circle)) behind a start arrow
// - Accepting state: (((Double circle)))
// - Default: (Rounded)
// Rules sharing a source and target are merged into one labelled arrow.
func GenerateMermaid(def *domain.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	states := map[domain.State]struct{}{def.Initial: {}}
	for s := range def.Accepting {
		states[s] = struct{}{}
	}
	labels := make(map[edge][]string)
	var order []edge
	for _, t := range def.Transitions {
		states[t.State] = struct{}{}
		states[t.Next] = struct{}{}
		e := edge{t.State, t.Next}
		if _, ok := labels[e]; !ok {
			order = append(order, e)
		}
		labels[e] = append(labels[e], fmt.Sprintf("%s/%s,%s", escape(t.Read), escape(t.Write), t.Move))
	}

	sorted := make([]domain.State, 0, len(states))
	for s := range states {
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	sb.WriteString("    start(( )) --> " + nodeID(def.Initial) + "\n")
	for _, s := range sorted {
		opener, closer := "(", ")"
		switch {
		case def.Accepting.Contains(s):
			opener, closer = "(((", ")))"
		case s == def.Initial:
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%d\"%s\n", nodeID(s), opener, s, closer))
	}

	for _, e := range order {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", nodeID(e.from), strings.Join(labels[e], "<br/>"), nodeID(e.to)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both themes
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.State]bool)
		for _, s := range overlay.Visited {
			if !seen[s] && s != overlay.Current {
				seen[s] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(s)))
			}
		}
		sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.Current)))
	}

	return sb.String()
}

func nodeID(s domain.State) string {
	return fmt.Sprintf("q%d", s)
}

// escape makes a symbol safe inside a quoted Mermaid label.
func escape(s domain.Symbol) string {
	switch s {
	case '"':
		return "#quot;"
	case '#':
		return "#35;"
	case '<':
		return "#lt;"
	case '>':
		return "#gt;"
	}
	return string(rune(s))
}
