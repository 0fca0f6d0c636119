package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Mask replaces redacted words in stored reports.
const Mask = "***"

type redactionMiddleware struct {
	next     ports.ReportStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks words matching any of the patterns
// before reports are saved. Verdicts and reasons are kept; the path and offending symbol of a
// masked word are dropped since they would reveal it.
func NewRedactionMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.ReportStore) ports.ReportStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactionMiddleware) Save(ctx context.Context, report *domain.Report) error {
	// Clone to avoid side effects on the report the caller still holds.
	cloned := *report
	cloned.Results = make([]domain.Result, len(report.Results))
	for i, res := range report.Results {
		if m.matches(res.Word) {
			res.Word = Mask
			res.Path = nil
			res.Symbol = ""
		}
		cloned.Results[i] = res
	}
	return m.next.Save(ctx, &cloned)
}

func (m *redactionMiddleware) matches(word string) bool {
	for _, p := range m.patterns {
		if p.MatchString(word) {
			return true
		}
	}
	return false
}

func (m *redactionMiddleware) Load(ctx context.Context, id string) (*domain.Report, error) {
	return m.next.Load(ctx, id)
}

func (m *redactionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
