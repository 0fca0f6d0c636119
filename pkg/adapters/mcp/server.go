package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/sanitize"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const definitionsURI = "automata://definitions"

// EvaluateArgs are the arguments of the evaluate_words tool.
type EvaluateArgs struct {
	Definition string   `json:"definition,omitempty"`
	Name       string   `json:"name,omitempty"`
	Words      []string `json:"words"`
	Trace      bool     `json:"trace,omitempty"`
}

// EvaluateResult aligns with the HTTP API response.
type EvaluateResult struct {
	Definition string                 `json:"definition" jsonschema_description:"Name of the evaluated definition, or inline"`
	Results    []domain.Result        `json:"results" jsonschema_description:"One result per word, in input order"`
	Verdicts   domain.Verdicts        `json:"verdicts" jsonschema_description:"Verdict per distinct word"`
	Summary    map[domain.Verdict]int `json:"summary" jsonschema_description:"Number of words per verdict"`
}

// DefinitionArgs points at a definition, either inline or by name.
type DefinitionArgs struct {
	Definition string `json:"definition,omitempty"`
	Name       string `json:"name,omitempty"`
}

// ValidateResult reports whether a definition is well formed, and what looks suspicious in it.
type ValidateResult struct {
	Valid    bool                `json:"valid"`
	Error    string              `json:"error,omitempty"`
	Section  string              `json:"section,omitempty"`
	Line     int                 `json:"line,omitempty"`
	States   int                 `json:"states,omitempty"`
	Rules    int                 `json:"rules,omitempty"`
	Analysis *validator.Analysis `json:"analysis,omitempty"`
}

// Server wraps the automata Engine and exposes it as an MCP Server.
type Server struct {
	engine      ports.Engine
	maxWordSize int
	mcpServer   *server.MCPServer
}

// NewServer creates a new MCP Server instance.
// maxWordSize <= 0 selects the default limit.
func NewServer(engine ports.Engine, maxWordSize int) *Server {
	s := &Server{
		engine:      engine,
		maxWordSize: maxWordSize,
		mcpServer:   server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
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
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, stopping MCP server")
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
	definitionOpts := []mcp.ToolOption{
		mcp.WithString("definition", mcp.Description("Inline automaton definition in the five-section text format")),
		mcp.WithString("name", mcp.Description("Name of a stored definition (use list_definitions)")),
	}

	// TOOL: evaluate_words
	evaluateOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Classify words as ACCEPTED, REJECTED or INVALID against a deterministic finite automaton. Provide either definition or name."),
		mcp.WithArray("words", mcp.Required(), mcp.Description("Words to classify"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithBoolean("trace", mcp.Description("Include the visited state path of every word")),
		mcp.WithOutputSchema[EvaluateResult](),
	}, definitionOpts...)
	s.mcpServer.AddTool(mcp.NewTool("evaluate_words", evaluateOpts...), mcp.NewStructuredToolHandler(s.handleEvaluate))

	// TOOL: validate_definition
	validateOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Check an automaton definition and report format errors, unreachable states, dead states and missing transitions."),
		mcp.WithOutputSchema[ValidateResult](),
	}, definitionOpts...)
	s.mcpServer.AddTool(mcp.NewTool("validate_definition", validateOpts...), mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: get_graph
	graphOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Render the automaton as a Mermaid flowchart, optionally highlighting the run of a word."),
		mcp.WithString("word", mcp.Description("Word whose run is highlighted (optional)")),
	}, definitionOpts...)
	s.mcpServer.AddTool(mcp.NewTool("get_graph", graphOpts...), s.handleGraph)

	// TOOL: list_definitions
	s.mcpServer.AddTool(mcp.NewTool("list_definitions",
		mcp.WithDescription("List the names of the stored automaton definitions."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.engine.Definitions(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest, args EvaluateArgs) (EvaluateResult, error) {
	if err := sanitize.Words(args.Words, s.maxWordSize); err != nil {
		slog.Warn("MCP Evaluate: input rejected", "err", err, "words", len(args.Words))
		return EvaluateResult{}, fmt.Errorf("input rejected: %w", err)
	}

	a, name, err := s.resolve(ctx, args.Definition, args.Name)
	if err != nil {
		return EvaluateResult{}, err
	}

	results := s.engine.EvaluateEach(ctx, a, args.Words)
	out := EvaluateResult{
		Definition: name,
		Results:    results,
		Verdicts:   domain.Collapse(results),
		Summary:    domain.Count(results),
	}
	if !args.Trace {
		for i := range out.Results {
			out.Results[i].Path = nil
		}
	}
	return out, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args DefinitionArgs) (ValidateResult, error) {
	a, _, err := s.resolve(ctx, args.Definition, args.Name)
	if err != nil {
		var fe *domain.FormatError
		if errors.As(err, &fe) {
			return ValidateResult{Valid: false, Error: err.Error(), Section: string(fe.Section), Line: fe.Line}, nil
		}
		return ValidateResult{}, err
	}

	analysis := validator.Analyze(a)
	return ValidateResult{
		Valid:    true,
		States:   len(a.States()),
		Rules:    len(a.Rules()),
		Analysis: &analysis,
	}, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, _, err := s.resolve(ctx, request.GetString("definition", ""), request.GetString("name", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var overlay *graph.Overlay
	if word, ok := request.GetArguments()["word"].(string); ok {
		if err := sanitize.Word(word, s.maxWordSize); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("input rejected: %v", err)), nil
		}
		overlay = graph.OverlayFromResult(runtime.Run(a, word))
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(a, overlay)), nil
}

func (s *Server) resolve(ctx context.Context, definition, name string) (*domain.Automaton, string, error) {
	switch {
	case definition != "" && name != "":
		return nil, "", errors.New("set either definition or name, not both")
	case name != "":
		a, err := s.engine.Load(ctx, name)
		return a, name, err
	case definition != "":
		a, err := s.engine.Parse(ctx, []byte(definition))
		return a, "inline", err
	default:
		return nil, "", errors.New("definition or name is required")
	}
}

func (s *Server) registerResources() {
	// EXPOSE: automata://definitions
	s.mcpServer.AddResource(mcp.NewResource(definitionsURI, "Stored Automaton Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.engine.Definitions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list definitions: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      definitionsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
