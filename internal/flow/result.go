// Package flow implements the two-phase configuration flows: setup, which
// creates an entry, and options, which edits one.
package flow

import (
	"errors"

	"smart_climate/internal/schema"
)

// ResultType tells the host what to do with a step result.
type ResultType string

const (
	ResultForm        ResultType = "form"
	ResultCreateEntry ResultType = "create_entry"
)

// Step ids.
const (
	StepUser = "user"
	StepInit = "init"
)

var (
	ErrFlowFinished   = errors.New("flow already finished")
	ErrFlowNotFound   = errors.New("flow not found")
	ErrUnknownHandler = errors.New("unknown flow handler")
)

// Result is the outcome of a single flow step.
type Result struct {
	FlowID     string             `json:"flow_id,omitempty"`
	Handler    string             `json:"handler"`
	Type       ResultType         `json:"type"`
	StepID     string             `json:"step_id,omitempty"`
	DataSchema []schema.FormField `json:"data_schema,omitempty"`
	Errors     schema.FieldErrors `json:"errors,omitempty"`
	Title      string             `json:"title,omitempty"`
	Data       schema.Record      `json:"data,omitempty"`
	Source     string             `json:"source,omitempty"`
	EntryID    string             `json:"entry_id,omitempty"`
}

// Terminal reports whether the flow ends with this result.
func (r Result) Terminal() bool { return r.Type != ResultForm }

// Flow is a single-use, step-driven configuration dialog. A nil input asks
// for the current form; anything else is a submission.
type Flow interface {
	Step(input map[string]any) (Result, error)
}
