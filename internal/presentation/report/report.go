package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/muesli/termenv"
)

// Format selects how results are written.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// EmptyWord is how the empty word is displayed in text and markdown output.
const EmptyWord = "ε"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected text, json or markdown)", s)
	}
}

// Options tunes the output.
type Options struct {
	// Trace adds the visited state path of every word.
	Trace bool
	// Profile colors verdicts in text output. The zero value (termenv.TrueColor) is
	// rarely what callers want; use termenv.Ascii to disable colors.
	Profile termenv.Profile
}

// Document is the JSON shape of a batch.
type Document struct {
	Definition string                 `json:"definition,omitempty"`
	Results    []domain.Result        `json:"results"`
	Verdicts   domain.Verdicts        `json:"verdicts"`
	Summary    map[domain.Verdict]int `json:"summary"`
}

// Write renders results to w in the given format.
func Write(w io.Writer, format Format, definition string, results []domain.Result, opts Options) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, definition, results, opts)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(definition, results, opts))
		return err
	case FormatText, "":
		return writeText(w, results, opts)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, definition string, results []domain.Result, opts Options) error {
	out := make([]domain.Result, len(results))
	copy(out, results)
	if !opts.Trace {
		for i := range out {
			out[i].Path = nil
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{
		Definition: definition,
		Results:    out,
		Verdicts:   domain.Collapse(results),
		Summary:    domain.Count(results),
	})
}

func writeText(w io.Writer, results []domain.Result, opts Options) error {
	for _, r := range results {
		line := fmt.Sprintf("%s\t%s", display(r.Word), colorVerdict(opts.Profile, r.Verdict))
		if opts.Trace {
			line += "\t" + describe(r)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders results as a markdown document with a summary line and a table.
func Markdown(definition string, results []domain.Result, opts Options) string {
	var sb strings.Builder
	if definition != "" {
		sb.WriteString(fmt.Sprintf("# %s\n\n", definition))
	}
	counts := domain.Count(results)
	sb.WriteString(fmt.Sprintf("**%d** accepted, **%d** rejected, **%d** invalid\n\n",
		counts[domain.Accepted], counts[domain.Rejected], counts[domain.Invalid]))

	if opts.Trace {
		sb.WriteString("| Word | Verdict | Run |\n|---|---|---|\n")
	} else {
		sb.WriteString("| Word | Verdict |\n|---|---|\n")
	}
	for _, r := range results {
		word := "`" + display(r.Word) + "`"
		if opts.Trace {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", escapeCell(word), r.Verdict, escapeCell(describe(r))))
		} else {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", escapeCell(word), r.Verdict))
		}
	}
	return sb.String()
}

func display(word string) string {
	if word == "" {
		return EmptyWord
	}
	return word
}

// describe explains a single run, e.g. "q0 → q1 → q3" or "unknown symbol 'c'".
func describe(r domain.Result) string {
	path := strings.Join(r.Path, " → ")
	switch r.Reason {
	case domain.ReasonUnknownSymbol:
		return fmt.Sprintf("unknown symbol '%s'", r.Symbol)
	case domain.ReasonNoTransition:
		return fmt.Sprintf("%s ✗ no transition on '%s'", path, r.Symbol)
	default:
		return path
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func colorVerdict(p termenv.Profile, v domain.Verdict) string {
	if p == termenv.Ascii {
		return string(v)
	}
	var color termenv.Color
	switch v {
	case domain.Accepted:
		color = p.Color("#22c55e")
	case domain.Rejected:
		color = p.Color("#ef4444")
	default:
		color = p.Color("#eab308")
	}
	return termenv.String(string(v)).Foreground(color).String()
}
