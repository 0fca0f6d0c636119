package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// entryNode is the invisible node the start arrow comes from.
const entryNode = "__entry"

// Overlay contains the run data to visualize on the graph.
type Overlay struct {
	VisitedStates []string
	CurrentState  string
}

// OverlayFromResult builds an overlay from an evaluation result path.
func OverlayFromResult(res domain.Result) *Overlay {
	if len(res.Path) == 0 {
		return nil
	}
	return &Overlay{
		VisitedStates: res.Path,
		CurrentState:  res.Path[len(res.Path)-1],
	}
}

// GenerateMermaid produces a Mermaid flowchart for the automaton.
// It applies semantic styling:
// - Final: (((Double circle)))
// - Other states: ((Circle))
// - Initial: entered by an arrow from a hidden point
// Parallel edges between the same states are merged into one labelled "a, b".
// Overlay styles (Visited/Current) are applied if provided.
func GenerateMermaid(a *domain.Automaton, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	sb.WriteString(fmt.Sprintf("    %s[ ]:::entry --> %s\n", entryNode, sanitizeMermaidID(a.InitialState())))

	for _, st := range a.States() {
		opener, closer := "((", "))"
		if a.IsFinal(st) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(st), opener, escapeLabel(st), closer))
	}

	type edge struct{ from, to string }
	var order []edge
	labels := make(map[edge][]string)
	for _, r := range a.Rules() {
		e := edge{r.From, r.To}
		if _, seen := labels[e]; !seen {
			order = append(order, e)
		}
		labels[e] = append(labels[e], escapeLabel(r.Symbol))
	}
	for _, e := range order {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(e.from), strings.Join(labels[e], ", "), sanitizeMermaidID(e.to)))
	}

	sb.WriteString("    classDef entry fill:none,stroke:none;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			if id == overlay.CurrentState || !a.HasState(id) {
				continue
			}
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentState != "" && a.HasState(overlay.CurrentState) {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentState)))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

// sanitizeMermaidID maps a state name to a Mermaid-safe identifier.
// The "s_" prefix keeps names like "end" or "graph" from colliding with keywords.
func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	sb.WriteString("s_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteString(fmt.Sprintf("_%x_", r))
		}
	}
	return sb.String()
}
