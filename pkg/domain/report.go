package domain

import "time"

// Report is a persisted evaluation batch.
type Report struct {
	ID         string    `json:"id"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"created_at"`
	Results    []Result  `json:"results"`

	// Sealed carries the encrypted report when the store is wrapped by an encryption
	// middleware. Definition and Results are empty in that case.
	Sealed []byte `json:"sealed,omitempty"`
}

// NewReport creates a report for the given definition name.
func NewReport(id, definition string, results []Result) *Report {
	return &Report{
		ID:         id,
		Definition: definition,
		CreatedAt:  time.Now().UTC(),
		Results:    results,
	}
}

// Verdicts returns the word → verdict mapping of the report.
func (r *Report) Verdicts() Verdicts {
	return Collapse(r.Results)
}
