package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/trace"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
)

// maxDescriptionSize bounds uploaded descriptions and run requests.
const maxDescriptionSize = 1 << 20

// Server exposes machine descriptions and runs over HTTP.
// Every run compiles a fresh engine, so concurrent requests never share a tape.
type Server struct {
	Loader   ports.DefinitionLoader
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics records runs into m and serves gatherer on /metrics.
func WithMetrics(m *observability.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Metrics = m
		s.Gatherer = gatherer
	}
}

// RunRequest is the body of POST /machines/{name}/runs.
type RunRequest struct {
	Input string `json:"input"`
	Trace bool   `json:"trace,omitempty"`
}

// RunResponse is a halted run, optionally with its configuration trace.
type RunResponse struct {
	domain.Result
	Trace []string `json:"trace,omitempty"`
}

// NewHandler creates a new HTTP handler serving descriptions from loader.
func NewHandler(loader ports.DefinitionLoader, opts ...Option) http.Handler {
	s := &Server{Loader: loader}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Route("/machines", func(r chi.Router) {
		r.Get("/", s.ListMachines)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetMachine)
			r.Put("/", s.PutMachine)
			r.Delete("/", s.DeleteMachine)
			r.Get("/graph", s.GetGraph)
			r.Post("/runs", s.CreateRun)
		})
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": turing.Version,
	})
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Loader.ListDefinitions(r.Context())
	if err != nil {
		s.fail(w, "list machines", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"machines": names})
}

// GetMachine handles the GET /machines/{name} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	eng, err := turing.Load(r.Context(), s.Loader, chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "load machine", err)
		return
	}
	writeJSON(w, http.StatusOK, compiler.ToDTO(eng.Definition()))
}

// PutMachine handles the PUT /machines/{name} request.
// The body is a raw description; ?format=yaml selects the YAML format.
func (s *Server) PutMachine(w http.ResponseWriter, r *http.Request) {
	store, ok := s.Loader.(ports.DefinitionStore)
	if !ok {
		http.Error(w, "Machine source is read-only", http.StatusMethodNotAllowed)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxDescriptionSize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	desc := &ports.Description{
		Name:   chi.URLParam(r, "name"),
		Format: domain.FormatText,
		Data:   data,
	}
	if r.URL.Query().Get("format") == string(domain.FormatYAML) {
		desc.Format = domain.FormatYAML
	}

	// Refuse to publish descriptions that would not run.
	if _, err := turing.Compile(desc); err != nil {
		s.fail(w, "compile machine", err)
		return
	}
	if err := store.SaveDefinition(r.Context(), desc); err != nil {
		s.fail(w, "save machine", err)
		return
	}
	s.Logger.Info("machine saved", "machine", desc.Name, "format", desc.Format)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMachine handles the DELETE /machines/{name} request.
func (s *Server) DeleteMachine(w http.ResponseWriter, r *http.Request) {
	store, ok := s.Loader.(ports.DefinitionStore)
	if !ok {
		http.Error(w, "Machine source is read-only", http.StatusMethodNotAllowed)
		return
	}
	if err := store.DeleteDefinition(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, "delete machine", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles the GET /machines/{name}/graph request.
// With ?input= the states visited by that run are highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.Overlay
	var opts []turing.Option
	input, withRun := r.URL.Query()["input"]
	if withRun {
		overlay = &graph.Overlay{}
		opts = append(opts, turing.WithLifecycleHooks(overlay.Hooks()))
	}

	eng, err := turing.Load(r.Context(), s.Loader, chi.URLParam(r, "name"), opts...)
	if err != nil {
		s.fail(w, "load machine", err)
		return
	}
	if withRun {
		if _, err := eng.RunString(input[0]); err != nil {
			s.fail(w, "run machine", err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(eng.Definition(), overlay))
}

// CreateRun handles the POST /machines/{name}/runs request.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxDescriptionSize)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CreateRun: Invalid request body", "error", err)
		return
	}

	name := chi.URLParam(r, "name")
	opts := []turing.Option{turing.WithLogger(s.Logger)}
	if s.Metrics != nil {
		opts = append(opts, turing.WithLifecycleHooks(s.Metrics.Hooks(name)))
	}
	var rec *trace.Recorder
	if body.Trace {
		rec = &trace.Recorder{}
		opts = append(opts, turing.WithLifecycleHooks(rec.Hooks()))
	}

	eng, err := turing.Load(r.Context(), s.Loader, name, opts...)
	if err != nil {
		s.fail(w, "load machine", err)
		return
	}
	res, err := eng.RunString(body.Input)
	if err != nil {
		s.fail(w, "run machine", err)
		return
	}

	resp := RunResponse{Result: *res}
	if rec != nil {
		resp.Trace = rec.Lines
	}
	writeJSON(w, http.StatusOK, resp)
}

// fail maps domain errors onto HTTP status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	var defErr *domain.DefinitionError
	var inErr *domain.InputError
	switch {
	case errors.Is(err, domain.ErrDefinitionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &defErr), errors.As(err, &inErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, fmt.Sprintf("%s: internal error", op), http.StatusInternalServerError)
		s.Logger.Error(op+" failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
