package motor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Field keys shared by loaders and renderers.
const (
	FieldName           = "name"
	FieldAddress        = "adress"
	FieldTitle          = "title"
	FieldCompany        = "company"
	FieldRegion         = "region"
	FieldSalary         = "sal"
	FieldEmploymentType = "holidayTpNm"
	FieldWantedAuthNo   = "wantedAuthNo"
	FieldDetailURL      = "url"
)

// token positions within a classification string
const (
	TokenProvince = 0
	TokenCity     = 1
)

// ErrEmptyDataset is returned when a source produced no records at all.
var ErrEmptyDataset = errors.New("dataset contains no records")

// Record is a single row of a dataset: a company or a job posting.
// Records are never mutated once a loader has produced them.
type Record struct {
	Name           string
	Classification string
	Fields         map[string]string
}

// Field returns the raw value stored under key, or an empty string.
func (r *Record) Field(key string) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[key]
}

// Tokens splits the classification on whitespace.
func (r *Record) Tokens() []string {
	return strings.Fields(r.Classification)
}

// Token returns the classification token at position, or "" when the
// classification is too short.
func (r *Record) Token(position int) string {
	if position < 0 {
		return ""
	}
	tokens := r.Tokens()
	if position >= len(tokens) {
		return ""
	}
	return tokens[position]
}

// Loader obtains the full record list from an external source.
type Loader interface {
	// Name identifies the source in logs and error messages
	Name() string

	// Load fetches and decodes every record of the source
	Load(ctx context.Context) ([]Record, error)
}

// Renderer draws one page of the filtered view.
type Renderer interface {
	Render(page []Record, state PageState)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(page []Record, state PageState)

// Render calls f(page, state).
func (f RendererFunc) Render(page []Record, state PageState) {
	f(page, state)
}

// LoadError wraps any failure coming out of a Loader. It is the only error
// surfaced to the user; filtering and pagination never fail.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to load data: %v", e.Err)
	}
	return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
