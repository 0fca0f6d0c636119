package domain

import (
	"errors"
	"fmt"
)

// ErrFormat is the root of every definition format failure.
var ErrFormat = errors.New("invalid automaton definition")

// Format failure categories. All of them match ErrFormat via errors.Is.
var (
	ErrMissingSection   = fmt.Errorf("%w: missing section", ErrFormat)
	ErrMalformedLine    = fmt.Errorf("%w: malformed line", ErrFormat)
	ErrUnknownState     = fmt.Errorf("%w: unknown state", ErrFormat)
	ErrUnknownSymbol    = fmt.Errorf("%w: unknown symbol", ErrFormat)
	ErrDuplicateState   = fmt.Errorf("%w: duplicate state", ErrFormat)
	ErrNondeterministic = fmt.Errorf("%w: non-deterministic transition", ErrFormat)
)

// ErrDefinitionNotFound is returned when a definition source cannot locate a definition.
var ErrDefinitionNotFound = errors.New("definition not found")

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// ErrInvalidReportID is returned when a report ID cannot name a stored report.
var ErrInvalidReportID = errors.New("invalid report id")

// Section identifies the part of a definition a FormatError refers to.
type Section string

const (
	SectionAlphabet    Section = "alphabet"
	SectionStates      Section = "states"
	SectionFinalStates Section = "final_states"
	SectionInitial     Section = "initial_state"
	SectionTransitions Section = "transitions"
)

// FormatError describes why a definition was rejected.
// Line is 1-based and zero when the failure is not tied to a source line.
type FormatError struct {
	Line    int
	Section Section
	Msg     string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Msg)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Msg)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError builds a FormatError for the given section and category.
func NewFormatError(section Section, line int, category error, format string, args ...any) *FormatError {
	return &FormatError{
		Line:    line,
		Section: section,
		Msg:     fmt.Sprintf(format, args...),
		Err:     category,
	}
}

// NotFoundError reports a definition that could not be located or opened.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrDefinitionNotFound, e.Name, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrDefinitionNotFound, e.Name)
}

// Is lets errors.Is(err, ErrDefinitionNotFound) match regardless of the underlying cause.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrDefinitionNotFound
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
