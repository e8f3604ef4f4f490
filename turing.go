package turing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// Version is the release of the simulator.
const Version = "0.3.0"

// Engine is the high-level entry point for the simulator.
// It wraps the internal runtime and provides a simplified API for consumers.
// An Engine runs one input at a time; use separate Engines for concurrent runs.
type Engine struct {
	machine *runtime.Machine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
// Calling it more than once chains the hooks in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithName overrides the machine name used in logs.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New validates def and prepares it for running.
// Definition problems (missing sections, duplicate rules) are reported here as *domain.DefinitionError.
func New(def *domain.Definition, opts ...Option) (*Engine, error) {
	eng := &Engine{Name: def.Name}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	// Enrich logger with machine name if available
	if eng.Name != "" {
		eng.logger = eng.logger.With("machine", eng.Name)
	}

	m, err := runtime.NewMachine(def,
		runtime.WithHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	if err != nil {
		return nil, err
	}
	eng.machine = m
	return eng, nil
}

// Compile parses a raw description and builds an Engine from it.
func Compile(desc *ports.Description, opts ...Option) (*Engine, error) {
	def, err := compiler.Compile(desc.Format, desc.Data)
	if err != nil {
		return nil, err
	}
	if def.Name == "" {
		def.Name = desc.Name
	}
	return New(def, opts...)
}

// Load fetches the named description from loader and compiles it.
func Load(ctx context.Context, loader ports.DefinitionLoader, name string, opts ...Option) (*Engine, error) {
	desc, err := loader.GetDefinition(ctx, name)
	if err != nil {
		return nil, err
	}
	eng, err := Compile(desc, opts...)
	if err != nil {
		return nil, fmt.Errorf("machine %s: %w", desc.Name, err)
	}
	return eng, nil
}

// Run executes the machine on input until it halts.
// Run cannot fail; a machine that never halts makes Run block forever.
func (e *Engine) Run(input []domain.Symbol) *domain.Result {
	e.machine.Run(input)
	return e.machine.Result()
}

// Accepts runs input and only reports acceptance.
func (e *Engine) Accepts(input []domain.Symbol) bool {
	return e.machine.Run(input)
}

// RunString maps text to symbols and runs it.
// Symbols the machine does not know about are rejected with a *domain.InputError before the run.
func (e *Engine) RunString(text string) (*domain.Result, error) {
	input, err := compiler.ParseInput(e.machine.Definition(), text)
	if err != nil {
		e.logger.Warn("input rejected", "error", err)
		return nil, err
	}
	return e.Run(input), nil
}

// Definition returns the machine description.
func (e *Engine) Definition() *domain.Definition {
	return e.machine.Definition()
}
