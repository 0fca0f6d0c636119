package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the batch size below which fanning out is not worth it.
const parallelThreshold = 64

// Evaluator runs batches of words through an automaton.
// It never fails: every word yields a verdict.
type Evaluator struct {
	workers int
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithWorkers bounds the number of goroutines used for large batches.
// Values below 2 keep evaluation on the calling goroutine.
func WithWorkers(n int) EvaluatorOption {
	return func(e *Evaluator) {
		e.workers = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EvaluatorOption {
	return func(e *Evaluator) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEvaluator creates an evaluator. By default it runs sequentially and logs nothing.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		workers: 1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate classifies every word and returns one verdict per distinct word.
// If a word occurs more than once, the verdict of its last occurrence is kept.
func (e *Evaluator) Evaluate(ctx context.Context, a *domain.Automaton, words []string) domain.Verdicts {
	return domain.Collapse(e.EvaluateEach(ctx, a, words))
}

// EvaluateEach classifies every word occurrence and returns the results in input order.
func (e *Evaluator) EvaluateEach(ctx context.Context, a *domain.Automaton, words []string) []domain.Result {
	results := make([]domain.Result, len(words))
	start := time.Now()

	if e.workers < 2 || len(words) < parallelThreshold {
		for i, w := range words {
			results[i] = e.evaluate(ctx, a, w)
		}
	} else {
		// Each goroutine writes only its own index, so no locking is needed.
		var g errgroup.Group
		g.SetLimit(e.workers)
		for i, w := range words {
			g.Go(func() error {
				results[i] = e.evaluate(ctx, a, w)
				return nil
			})
		}
		_ = g.Wait()
	}

	counts := domain.Count(results)
	e.logger.Debug("batch evaluated",
		"words", len(words),
		"accepted", counts[domain.Accepted],
		"rejected", counts[domain.Rejected],
		"invalid", counts[domain.Invalid],
		"duration", time.Since(start),
	)
	return results
}

func (e *Evaluator) evaluate(ctx context.Context, a *domain.Automaton, word string) domain.Result {
	if e.hooks.OnVerdict == nil {
		return Run(a, word)
	}

	start := time.Now()
	res := Run(a, word)
	e.hooks.OnVerdict(ctx, &domain.VerdictEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventVerdict,
		},
		Result:   res,
		Duration: time.Since(start),
	})
	return res
}
