package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/validator"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/adapters/loam"
	mcpAdapter "github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
)

func load(ctx context.Context, src SourceOptions, arg string, logger *slog.Logger, opts ...turing.Option) (*turing.Engine, ports.DefinitionLoader, error) {
	loader, name, closer, err := src.Resolve(arg)
	defer closer()
	if err != nil {
		return nil, nil, err
	}
	if logger != nil {
		opts = append(opts, turing.WithLogger(logger))
	}
	eng, err := turing.Load(ctx, loader, name, opts...)
	return eng, loader, err
}

// Validate compiles a description and reports the first problem with its line number.
// Lint warnings are printed too; with strict they fail the validation.
func Validate(ctx context.Context, src SourceOptions, arg string, strict bool, out io.Writer) error {
	eng, _, err := load(ctx, src, arg, nil)
	if err != nil {
		return err
	}
	def := eng.Definition()
	warnings := validator.Lint(def)
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	if strict && len(warnings) > 0 {
		return fmt.Errorf("%s: %d warnings", eng.Name, len(warnings))
	}
	fmt.Fprintf(out, "%s is valid: %d rules, %d symbols, initial state %d\n",
		eng.Name, len(def.Transitions), len(def.Symbols()), def.Initial)
	return nil
}

// Graph writes the Mermaid diagram of a machine.
// When input is not nil the machine runs on it first and the visited states are highlighted.
func Graph(ctx context.Context, src SourceOptions, arg string, input *string, out io.Writer) error {
	var overlay *graph.Overlay
	var opts []turing.Option
	if input != nil {
		overlay = &graph.Overlay{}
		opts = append(opts, turing.WithLifecycleHooks(overlay.Hooks()))
	}

	eng, _, err := load(ctx, src, arg, nil, opts...)
	if err != nil {
		return err
	}
	if input != nil {
		if _, err := eng.RunString(*input); err != nil {
			return err
		}
	}
	_, err = io.WriteString(out, graph.GenerateMermaid(eng.Definition(), overlay))
	return err
}

// InspectOptions configures the inspect command.
type InspectOptions struct {
	YAML  bool // print the description as YAML instead of a summary
	Raw   bool // print markdown without rendering it
	Width int
}

// Inspect describes a machine. Library documents contribute their prose.
func Inspect(ctx context.Context, src SourceOptions, arg string, opts InspectOptions, out io.Writer) error {
	eng, loader, err := load(ctx, src, arg, nil)
	if err != nil {
		return err
	}

	if opts.YAML {
		data, err := compiler.EncodeYAML(eng.Definition())
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	def := *eng.Definition()
	body := ""
	if lib, ok := loader.(*loam.Loader); ok {
		entry, err := lib.GetEntry(ctx, eng.Name)
		if err != nil {
			return err
		}
		body = entry.Body
		if entry.Title != "" {
			def.Description = entry.Title
		}
	}

	md := tui.Summary(&def, body)
	if !opts.Raw {
		if md, err = tui.NewRenderer(opts.Width)(md); err != nil {
			return err
		}
	}
	_, err = io.WriteString(out, md)
	return err
}

// List writes the names of the machines available from the source.
func List(ctx context.Context, src SourceOptions, out io.Writer) error {
	loader, closer, err := src.Open()
	defer closer()
	if err != nil {
		return err
	}
	names, err := loader.ListDefinitions(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

// Push validates a description file and publishes it to the source under name.
func Push(ctx context.Context, src SourceOptions, name, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	desc := &ports.Description{
		Name:   domain.TrimFormat(name),
		Format: domain.FormatFromName(path),
		Data:   data,
	}
	if _, err := turing.Compile(desc); err != nil {
		return fmt.Errorf("machine %s: %w", desc.Name, err)
	}

	loader, closer, err := src.Open()
	defer closer()
	if err != nil {
		return err
	}
	store, ok := loader.(ports.DefinitionStore)
	if !ok {
		return fmt.Errorf("source %q is read-only", src.Source)
	}
	if err := store.SaveDefinition(ctx, desc); err != nil {
		return err
	}
	if logger != nil {
		logger.Info("machine pushed", "machine", desc.Name, "format", desc.Format, "source", src.Source)
	}
	return nil
}

// Serve runs the HTTP API until ctx is done.
func Serve(ctx context.Context, src SourceOptions, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewNop()
	}
	loader, closer, err := src.Open()
	defer closer()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	handler := httpAdapter.NewHandler(loader,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(observability.NewMetrics(reg), reg),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Turing Server", "address", addr, "source", src.Source)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		logger.Info("Turing Server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server on the given transport ("stdio" or "sse").
func ServeMCP(ctx context.Context, src SourceOptions, transport string, port int, logger *slog.Logger) error {
	loader, closer, err := src.Open()
	defer closer()
	if err != nil {
		return err
	}

	srv := mcpAdapter.NewServer(loader, logger)
	switch transport {
	case "stdio":
		return srv.ServeStdio()
	case "sse":
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
}
