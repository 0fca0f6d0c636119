package compiler

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// headerLines is the number of mandatory lines before the transition rules.
const headerLines = 4

// maxLineSize bounds a single definition line.
const maxLineSize = 1 << 20

// sectionLines maps header sections to their 1-based line in the text format.
var sectionLines = map[domain.Section]int{
	domain.SectionAlphabet:    1,
	domain.SectionStates:      2,
	domain.SectionFinalStates: 3,
	domain.SectionInitial:     4,
}

// Parser converts the five-section text format into a validated Automaton.
//
// The format is line oriented:
//
//	<symbol>...
//	<state>...
//	<final-state>...
//	<initial-state>
//	<origin> <symbol> <destination>
//	...
//
// The first four lines are mandatory, but may be empty (an empty set).
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads data and returns the automaton it describes, or a *domain.FormatError.
func (p *Parser) Parse(data []byte) (*domain.Automaton, error) {
	def, err := p.ParseDefinition(data)
	if err != nil {
		return nil, err
	}

	a, err := domain.NewAutomaton(def)
	if err != nil {
		var fe *domain.FormatError
		if errors.As(err, &fe) && fe.Line == 0 {
			fe.Line = sectionLines[fe.Section]
		}
		return nil, err
	}
	return a, nil
}

// ParseDefinition splits data into the raw definition without cross-referencing
// states and symbols. Only structural problems (missing header, wrong token counts)
// are reported here.
func (p *Parser) ParseDefinition(data []byte) (domain.Definition, error) {
	lines, err := splitLines(data)
	if err != nil {
		return domain.Definition{}, err
	}

	if len(lines) < headerLines {
		return domain.Definition{}, domain.NewFormatError(domain.SectionInitial, 0, domain.ErrMissingSection,
			"expected at least %d header lines (alphabet, states, final states, initial state), got %d", headerLines, len(lines))
	}

	initial := strings.Fields(lines[3])
	if len(initial) != 1 {
		return domain.Definition{}, domain.NewFormatError(domain.SectionInitial, 4, domain.ErrMalformedLine,
			"expected exactly one initial state, got %d", len(initial))
	}

	def := domain.Definition{
		Alphabet:     strings.Fields(lines[0]),
		States:       strings.Fields(lines[1]),
		FinalStates:  strings.Fields(lines[2]),
		InitialState: initial[0],
	}

	for i, line := range lines[headerLines:] {
		lineNo := headerLines + i + 1
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return domain.Definition{}, domain.NewFormatError(domain.SectionTransitions, lineNo, domain.ErrMalformedLine,
				"expected \"origin symbol destination\", got %d fields", len(fields))
		}
		def.Rules = append(def.Rules, domain.Rule{
			From:   fields[0],
			Symbol: fields[1],
			To:     fields[2],
			Line:   lineNo,
		})
	}

	return def, nil
}

func splitLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewFormatError(domain.SectionTransitions, len(lines)+1, domain.ErrMalformedLine, "%v", err)
	}
	return lines, nil
}

// Format renders a back into the text format accepted by Parse.
func Format(a *domain.Automaton) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(a.Alphabet(), " "))
	buf.WriteByte('\n')
	buf.WriteString(strings.Join(a.States(), " "))
	buf.WriteByte('\n')
	buf.WriteString(strings.Join(a.FinalStates(), " "))
	buf.WriteByte('\n')
	buf.WriteString(a.InitialState())
	buf.WriteByte('\n')
	for _, r := range a.Rules() {
		fmt.Fprintf(&buf, "%s %s %s\n", r.From, r.Symbol, r.To)
	}
	return buf.Bytes()
}
