package automata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/google/uuid"
)

// inlineName labels definitions handed over as raw text rather than read from a source.
const inlineName = "inline"

// Engine is the high-level entry point for the automata library.
// It ties a definition source, the parser, the evaluator and an optional report store together.
type Engine struct {
	source    ports.DefinitionSource
	store     ports.ReportStore
	parser    *compiler.Parser
	evaluator *runtime.Evaluator
	hooks     domain.LifecycleHooks
	workers   int
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource injects a custom DefinitionSource, bypassing the default directory source.
func WithSource(s ports.DefinitionSource) Option {
	return func(e *Engine) {
		e.source = s
	}
}

// WithReportStore enables persistence of Run reports.
func WithReportStore(s ports.ReportStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithWorkers bounds the goroutines used to evaluate large batches.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// New initializes a new Engine.
// By default, definitions are read from the directory at dir.
// If WithSource is provided, dir can be empty and is only used as a label.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		parser:  compiler.NewParser(),
		workers: 1,
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.source == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom source is provided")
		}
		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)
		eng.source = file.NewSource(absPath)
	} else if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("source", eng.Name)
	}

	eng.evaluator = runtime.NewEvaluator(
		runtime.WithWorkers(eng.workers),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)

	return eng, nil
}

// Parse validates an inline definition.
func (e *Engine) Parse(ctx context.Context, data []byte) (*domain.Automaton, error) {
	return e.compile(ctx, inlineName, data)
}

// Load reads the named definition from the source and validates it.
// A missing definition yields a *domain.NotFoundError, an invalid one a *domain.FormatError.
func (e *Engine) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	raw, err := e.source.Read(ctx, name)
	if err != nil {
		e.emitLoad(ctx, name, nil, err)
		return nil, err
	}
	return e.compile(ctx, name, raw)
}

func (e *Engine) compile(ctx context.Context, name string, raw []byte) (*domain.Automaton, error) {
	a, err := e.parser.Parse(raw)
	e.emitLoad(ctx, name, a, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return a, nil
}

func (e *Engine) emitLoad(ctx context.Context, name string, a *domain.Automaton, err error) {
	if err != nil {
		e.logger.Debug("definition rejected", "name", name, "err", err)
	}
	if e.hooks.OnLoad == nil {
		return
	}
	ev := &domain.LoadEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventLoad},
		Name:      name,
		Err:       err,
	}
	if a != nil {
		ev.States = len(a.States())
		ev.Rules = len(a.Rules())
	}
	e.hooks.OnLoad(ctx, ev)
}

// Definitions lists the definitions available in the source.
func (e *Engine) Definitions(ctx context.Context) ([]string, error) {
	return e.source.List(ctx)
}

// Evaluate classifies words against a, one verdict per distinct word (last occurrence wins).
func (e *Engine) Evaluate(ctx context.Context, a *domain.Automaton, words []string) domain.Verdicts {
	return e.evaluator.Evaluate(ctx, a, words)
}

// EvaluateEach classifies every word occurrence, in input order.
func (e *Engine) EvaluateEach(ctx context.Context, a *domain.Automaton, words []string) []domain.Result {
	return e.evaluator.EvaluateEach(ctx, a, words)
}

// Run loads the named definition, evaluates words against it and, when a report store is
// configured, persists the resulting report.
func (e *Engine) Run(ctx context.Context, name string, words []string) (*domain.Report, error) {
	a, err := e.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.Record(ctx, name, a, words)
}

// Record evaluates words against an already loaded automaton and persists the report
// when a store is configured.
func (e *Engine) Record(ctx context.Context, name string, a *domain.Automaton, words []string) (*domain.Report, error) {
	report := domain.NewReport(uuid.NewString(), name, e.EvaluateEach(ctx, a, words))
	if e.store == nil {
		return report, nil
	}
	if err := e.store.Save(ctx, report); err != nil {
		return report, fmt.Errorf("failed to save report: %w", err)
	}
	e.logger.Info("report saved", "id", report.ID, "definition", name, "words", len(words))
	return report, nil
}

// Reports returns the configured report store, or nil.
func (e *Engine) Reports() ports.ReportStore {
	return e.store
}

// Source returns the underlying DefinitionSource used by the engine.
func (e *Engine) Source() ports.DefinitionSource {
	return e.source
}

// Parse validates a definition without an Engine.
func Parse(data []byte) (*domain.Automaton, error) {
	return compiler.NewParser().Parse(data)
}

// Evaluate classifies words against a without an Engine, sequentially.
func Evaluate(a *domain.Automaton, words []string) domain.Verdicts {
	return runtime.NewEvaluator().Evaluate(context.Background(), a, words)
}

var _ ports.Engine = (*Engine)(nil)
