package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Summary describes a machine as markdown.
// body, when not empty, is appended as free text after the table.
func Summary(def *domain.Definition, body string) string {
	var sb strings.Builder

	title := def.Name
	if title == "" {
		title = "machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if def.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", def.Description)
	}

	symbols := make([]string, 0, len(def.Alphabet))
	for _, s := range def.Alphabet.Sorted() {
		symbols = append(symbols, code(s.String()))
	}
	accepting := make([]string, 0, len(def.Accepting))
	for _, s := range def.Accepting.Sorted() {
		accepting = append(accepting, fmt.Sprint(s))
	}

	fmt.Fprintf(&sb, "- **Alphabet:** %s\n", orNone(strings.Join(symbols, " ")))
	fmt.Fprintf(&sb, "- **Blank:** %s\n", code(def.Blank.String()))
	fmt.Fprintf(&sb, "- **Initial state:** %d\n", def.Initial)
	fmt.Fprintf(&sb, "- **Accepting states:** %s\n", orNone(strings.Join(accepting, ", ")))
	fmt.Fprintf(&sb, "- **Rules:** %d\n\n", len(def.Transitions))

	if len(def.Transitions) > 0 {
		sb.WriteString("| State | Read | Next | Write | Move |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, t := range def.Transitions {
			fmt.Fprintf(&sb, "| %d | %s | %d | %s | %s |\n",
				t.State, code(t.Read.String()), t.Next, code(t.Write.String()), t.Move)
		}
		sb.WriteString("\n")
	}

	if body = strings.TrimSpace(body); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return sb.String()
}

func code(s string) string {
	if s == "|" {
		s = "\\|"
	}
	return "`" + s + "`"
}

func orNone(s string) string {
	if s == "" {
		return "_none_"
	}
	return s
}
