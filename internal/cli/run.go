package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/trace"
	"github.com/aretw0/turing/pkg/domain"
)

// maxLineSize bounds a single input line read from stdin.
const maxLineSize = 64 << 20

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Source  SourceOptions
	Machine string
	Trace   bool
	JSON    bool
	In      io.Reader
	Out     io.Writer
	Err     io.Writer // trace output
	Logger  *slog.Logger
}

// Record is one NDJSON line written by run --json.
type Record struct {
	Line  int    `json:"line"`
	Input string `json:"input"`
	*domain.Result
	Error string `json:"error,omitempty"`
}

// Run loads the machine and runs it once per input line.
// It returns nil when the last input was accepted and an *ExitError with
// ExitReject when it was not.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	loader, name, closer, err := opts.Source.Resolve(opts.Machine)
	defer closer()
	if err != nil {
		return err
	}

	engineOpts := []turing.Option{
		turing.WithLogger(opts.Logger),
		turing.WithLifecycleHooks(createDebugHooks(opts.Logger)),
	}
	if opts.Trace {
		engineOpts = append(engineOpts, turing.WithLifecycleHooks(trace.NewPrinter(opts.Err).Hooks()))
	}

	eng, err := turing.Load(ctx, loader, name, engineOpts...)
	if err != nil {
		return err
	}

	accepted, err := RunLines(opts.In, opts.Out, eng, opts.JSON)
	if err != nil {
		return err
	}
	if !accepted {
		return &ExitError{Code: ExitReject}
	}
	return nil
}

// RunLines feeds every line of in to eng and writes one result per line to out:
// the final tape, or a Record in JSON mode. An empty in is a single empty input.
// Inputs with unknown symbols count as rejected. The returned flag is the
// verdict on the last line.
func RunLines(in io.Reader, out io.Writer, eng *turing.Engine, jsonMode bool) (bool, error) {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	enc := json.NewEncoder(out)

	accepted := false
	runs := 0
	runLine := func(text string) error {
		runs++
		text = strings.TrimSuffix(text, "\r")
		res, err := eng.RunString(text)

		var inErr *domain.InputError
		if err != nil && !errors.As(err, &inErr) {
			return err
		}
		accepted = err == nil && res.Accepted

		if jsonMode {
			rec := Record{Line: runs, Input: text, Result: res}
			if err != nil {
				rec.Error = err.Error()
			}
			return enc.Encode(rec)
		}
		if err != nil {
			// Nothing on stdout; RunString already logged the rejection.
			return nil
		}
		_, werr := fmt.Fprintln(out, res.Tape)
		return werr
	}

	for sc.Scan() {
		if err := runLine(sc.Text()); err != nil {
			return false, err
		}
	}
	if err := sc.Err(); err != nil {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	if runs == 0 {
		if err := runLine(""); err != nil {
			return false, err
		}
	}
	return accepted, nil
}
