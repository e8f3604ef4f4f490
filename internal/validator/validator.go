package validator

import (
	"fmt"
	"sort"

	"github.com/aretw0/turing/pkg/domain"
)

// Warning is a suspicious but legal property of a machine.
type Warning struct {
	Line    int // 0 when the warning is not about a single rule
	Message string
}

func (w Warning) String() string {
	if w.Line == 0 {
		return w.Message
	}
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Lint crawls the rule graph from the initial state and reports unreachable
// states and accepting states no run can halt in.
func Lint(def *domain.Definition) []Warning {
	out := make(map[domain.State][]domain.State)
	for _, t := range def.Transitions {
		out[t.State] = append(out[t.State], t.Next)
	}

	// 1. Crawler
	visited := map[domain.State]bool{}
	queue := []domain.State{def.Initial}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range out[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	var warnings []Warning

	// 2. Rules out of states no run enters, reported at the state's first rule
	unreachable := map[domain.State]int{}
	for _, t := range def.Transitions {
		if _, seen := unreachable[t.State]; !visited[t.State] && !seen {
			unreachable[t.State] = t.Line
		}
	}
	for _, s := range sortedStates(unreachable) {
		warnings = append(warnings, Warning{
			Line:    unreachable[s],
			Message: fmt.Sprintf("state %d is never reached from initial state %d", s, def.Initial),
		})
	}

	// 3. Accepting states
	for _, s := range def.Accepting.Sorted() {
		if !visited[s] {
			warnings = append(warnings, Warning{Message: fmt.Sprintf("accepting state %d is never reached", s)})
		}
	}

	return warnings
}

func sortedStates(set map[domain.State]int) []domain.State {
	states := make([]domain.State, 0, len(set))
	for s := range set {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}
