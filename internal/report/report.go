// Package report records what a configuration run did to each object.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomePartial
	OutcomeSkipped
)

func (o Outcome) Valid() bool {
	return o >= OutcomeApplied && o <= OutcomeSkipped
}

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomePartial:
		return "partial"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "applied":
		return OutcomeApplied, nil
	case "partial":
		return OutcomePartial, nil
	case "skipped":
		return OutcomeSkipped, nil
	default:
		return 0, fmt.Errorf("invalid outcome: %q", s)
	}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Outcome) UnmarshalText(b []byte) error {
	v, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Entry is the outcome for one model object.
type Entry struct {
	Object   string   `json:"object" bson:"object"`
	Kind     string   `json:"kind" bson:"kind"`
	Outcome  Outcome  `json:"outcome" bson:"outcome"`
	Messages []string `json:"messages,omitempty" bson:"messages,omitempty"`
}

type Summary struct {
	Applied int `json:"applied" bson:"applied"`
	Partial int `json:"partial" bson:"partial"`
	Skipped int `json:"skipped" bson:"skipped"`
}

// Report is the result of one configuration run over a model.
type Report struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Standard    string    `json:"standard" bson:"standard"`
	DataVersion string    `json:"data_version" bson:"data_version"`
	Model       string    `json:"model" bson:"model"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	Entries     []Entry   `json:"entries" bson:"entries"`
	Complete    bool      `json:"complete" bson:"complete"`
	Summary     Summary   `json:"summary" bson:"summary"`
}

func New(standard, dataVersion, model string, now time.Time) *Report {
	return &Report{
		ID:          uuid.New(),
		Standard:    standard,
		DataVersion: dataVersion,
		Model:       model,
		CreatedAt:   now.UTC(),
	}
}

func (r *Report) Add(object, kind string, outcome Outcome, messages ...string) {
	r.Entries = append(r.Entries, Entry{Object: object, Kind: kind, Outcome: outcome, Messages: messages})
}

// Merge appends the entries of other. Identity fields of r are kept.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Entries = append(r.Entries, other.Entries...)
}

func (r *Report) Counts() Summary {
	var s Summary
	for _, e := range r.Entries {
		switch e.Outcome {
		case OutcomeApplied:
			s.Applied++
		case OutcomePartial:
			s.Partial++
		case OutcomeSkipped:
			s.Skipped++
		}
	}
	return s
}

// Finalize computes the summary. A run is complete when nothing was
// partially applied.
func (r *Report) Finalize() *Report {
	r.Summary = r.Counts()
	r.Complete = r.Summary.Partial == 0
	return r
}
