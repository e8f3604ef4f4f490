package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
)

// Exit codes of the turing binary.
const (
	ExitAccept = 0
	ExitReject = 1
	ExitUsage  = 2
)

// ExitError carries the process exit code out of a command.
// A nil Err means the code is the whole result (a rejected input) and nothing is printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to the process exit code.
// Errors other than *ExitError are usage or definition problems.
func ExitCode(err error) int {
	if err == nil {
		return ExitAccept
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// SignalContext is a context cancelled by a signal that remembers which one.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	mu  sync.Mutex
	sig os.Signal
}

// NewSignalContext is signal.NotifyContext with the signal kept for Signal.
// Without sigs it listens for SIGINT and SIGTERM.
func NewSignalContext(parent context.Context, sigs ...os.Signal) *SignalContext {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			sc.mu.Lock()
			sc.sig = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// CreateLogger configures the application logger from the --log-level flag.
// A non-empty file also receives every record as JSON; the returned func closes it.
func CreateLogger(level, file string) (*slog.Logger, func(), error) {
	noop := func() {}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, noop, err
	}
	if file == "" {
		return logging.New(lvl), noop, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.NewTee(os.Stderr, f, lvl), func() { _ = f.Close() }, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			logger.Debug("Step", "step", e.Step, "state", e.State, "read", e.Read,
				"next", e.Action.Next, "write", e.Action.Write, "move", e.Action.Move)
		},
	}
}
