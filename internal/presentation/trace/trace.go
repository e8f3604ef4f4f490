// Package trace prints the configuration of a machine at every step.
//
// A configuration line shows the touched tape with the current state in
// parentheses right before the cell under the head:
//
//	n(2)est
package trace

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/turing/pkg/domain"
)

// Describe formats one configuration line (without the newline).
func Describe(tape domain.TapeView, state domain.State) string {
	var sb strings.Builder
	write(&sb, tape, state, nil)
	return sb.String()
}

func write(sb *strings.Builder, tape domain.TapeView, state domain.State, style func(string) string) {
	cells := tape.Contents()
	head := tape.Head() - tape.Left()
	for i, s := range cells {
		if i == head {
			marker := "(" + strconv.FormatUint(uint64(state), 10) + ")"
			if style != nil {
				marker = style(marker)
			}
			sb.WriteString(marker)
		}
		sb.WriteRune(rune(s))
	}
}

// Printer writes configuration lines to an output.
type Printer struct {
	w     io.Writer
	color bool
	out   *termenv.Output
}

// NewPrinter returns a Printer writing to w.
// Colour is enabled only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		color = true
	}
	return &Printer{
		w:     w,
		color: color,
		out:   termenv.NewOutput(w),
	}
}

// Line writes one configuration line.
func (p *Printer) Line(tape domain.TapeView, state domain.State) error {
	var sb strings.Builder
	var style func(string) string
	if p.color {
		style = func(s string) string {
			return p.out.String(s).Foreground(p.out.Color("#f472b6")).Bold().String()
		}
	}
	write(&sb, tape, state, style)
	sb.WriteByte('\n')
	_, err := io.WriteString(p.w, sb.String())
	return err
}

// Hooks returns lifecycle hooks that print the configuration before each
// step and once more at halt.
func (p *Printer) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			_ = p.Line(e.Tape, e.State)
		},
		OnHalt: func(e *domain.HaltEvent) {
			_ = p.Line(e.Tape, e.State)
		},
	}
}

// Recorder collects configuration lines in memory.
type Recorder struct {
	Lines []string
}

// Hooks returns lifecycle hooks appending to r.Lines.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			r.Lines = append(r.Lines, Describe(e.Tape, e.State))
		},
		OnHalt: func(e *domain.HaltEvent) {
			r.Lines = append(r.Lines, Describe(e.Tape, e.State))
		},
	}
}
