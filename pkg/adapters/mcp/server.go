package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/trace"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// RunResponse is the structured result of the run_machine tool.
type RunResponse struct {
	Machine  string       `json:"machine" jsonschema_description:"Name of the machine that ran"`
	Accepted bool         `json:"accepted" jsonschema_description:"Whether the machine halted in an accepting state"`
	State    domain.State `json:"state" jsonschema_description:"State the machine halted in"`
	Tape     string       `json:"tape" jsonschema_description:"Touched tape span at halt"`
	Head     int          `json:"head" jsonschema_description:"Head position at halt"`
	Steps    int          `json:"steps" jsonschema_description:"Number of transitions applied"`
	Trace    []string     `json:"trace,omitempty" jsonschema_description:"Configuration before every step and at halt"`
}

// ListResponse is the structured result of the list_machines tool.
type ListResponse struct {
	Machines []string `json:"machines" jsonschema_description:"Names of the available machines"`
}

// Server exposes a machine library as an MCP Server.
type Server struct {
	loader    ports.DefinitionLoader
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(loader ports.DefinitionLoader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		loader:    loader,
		logger:    logger,
		mcpServer: server.NewMCPServer("turing-mcp", turing.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_machines
	listTool := mcp.NewTool("list_machines",
		mcp.WithDescription("List the Turing machines available in the library."),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListMachines))

	// TOOL: run_machine
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run a machine on an input string until it halts and report acceptance and the final tape. A machine that never halts blocks the call."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithString("input", mcp.Description("Initial tape contents (empty when omitted)")),
		mcp.WithBoolean("trace", mcp.Description("Include the configuration at every step")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunMachine))

	// TOOL: describe_machine
	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Get the alphabet, blank, states and rules of a machine."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, _ := request.GetArguments()["name"].(string)
		eng, err := turing.Load(ctx, s.loader, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(compiler.ToDTO(eng.Definition()))
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: graph_machine
	s.mcpServer.AddTool(mcp.NewTool("graph_machine",
		mcp.WithDescription("Get a Mermaid diagram of a machine's transition table."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, _ := request.GetArguments()["name"].(string)
		eng, err := turing.Load(ctx, s.loader, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		return mcp.NewToolResultText(graph.GenerateMermaid(eng.Definition(), nil)), nil
	})
}

func (s *Server) handleListMachines(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	names, err := s.loader.ListDefinitions(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return ListResponse{Machines: names}, nil
}

func (s *Server) handleRunMachine(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	name, _ := args["name"].(string)
	input, _ := args["input"].(string)
	withTrace, _ := args["trace"].(bool)
	if name == "" {
		return RunResponse{}, errors.New("name is required")
	}

	opts := []turing.Option{turing.WithLogger(s.logger)}
	var rec *trace.Recorder
	if withTrace {
		rec = &trace.Recorder{}
		opts = append(opts, turing.WithLifecycleHooks(rec.Hooks()))
	}

	eng, err := turing.Load(ctx, s.loader, name, opts...)
	if err != nil {
		return RunResponse{}, fmt.Errorf("load failed: %w", err)
	}
	res, err := eng.RunString(input)
	if err != nil {
		s.logger.Warn("MCP run_machine: Input rejected", "machine", name, "error", err)
		return RunResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	resp := RunResponse{
		Machine:  name,
		Accepted: res.Accepted,
		State:    res.State,
		Tape:     res.Tape,
		Head:     res.Head,
		Steps:    res.Steps,
	}
	if rec != nil {
		resp.Trace = rec.Lines
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: turing://machines
	s.mcpServer.AddResource(mcp.NewResource("turing://machines", "Machine Library",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.loader.ListDefinitions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list machines: %w", err)
		}
		jsonBytes, _ := json.Marshal(ListResponse{Machines: names})

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "turing://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
