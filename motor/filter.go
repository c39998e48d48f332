package motor

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Predicate decides whether a record belongs to the filtered view.
type Predicate interface {
	Matches(record *Record) bool
	IsActive() bool
}

// SearchPredicate is a case-insensitive substring match against the record name.
type SearchPredicate struct {
	term   string
	folded string
	caser  cases.Caser
}

// NewSearchPredicate creates a search predicate; an empty term is inactive.
func NewSearchPredicate(term string) *SearchPredicate {
	caser := cases.Fold()
	return &SearchPredicate{
		term:   term,
		folded: caser.String(term),
		caser:  caser,
	}
}

// Matches returns true if the folded name contains the folded term
func (p *SearchPredicate) Matches(record *Record) bool {
	if p.term == "" {
		return true
	}
	if record.Name == "" {
		return false
	}
	return strings.Contains(p.caser.String(record.Name), p.folded)
}

// IsActive returns true when a term has been entered
func (p *SearchPredicate) IsActive() bool {
	return p.term != ""
}

// Term returns the raw search term
func (p *SearchPredicate) Term() string {
	return p.term
}

// TokenPredicate matches one positional token of the classification exactly.
// Position 0 is the top-level category (province or region), 1 the sub-category.
type TokenPredicate struct {
	Position int
	Value    string
}

// NewTokenPredicate creates a predicate for the given token position.
func NewTokenPredicate(position int, value string) *TokenPredicate {
	return &TokenPredicate{Position: position, Value: value}
}

// Matches returns true if the token at Position equals Value
func (p *TokenPredicate) Matches(record *Record) bool {
	if p.Value == "" {
		return true
	}
	return record.Token(p.Position) == p.Value
}

// IsActive returns true when a value is selected
func (p *TokenPredicate) IsActive() bool {
	return p.Value != ""
}

// classificationPresent drops records that have no classification at all
type classificationPresent struct{}

func (classificationPresent) Matches(record *Record) bool {
	return strings.TrimSpace(record.Classification) != ""
}

func (classificationPresent) IsActive() bool {
	return true
}

// FilterChain combines predicates; a record must pass all of them.
type FilterChain struct {
	predicates []Predicate
}

// NewFilterChain creates an empty filter chain
func NewFilterChain() *FilterChain {
	return &FilterChain{
		predicates: make([]Predicate, 0, 4),
	}
}

// Add appends a predicate to the chain. Inactive predicates are skipped.
func (fc *FilterChain) Add(predicate Predicate) {
	if predicate != nil && predicate.IsActive() {
		fc.predicates = append(fc.predicates, predicate)
	}
}

// Clear removes all predicates
func (fc *FilterChain) Clear() {
	fc.predicates = fc.predicates[:0]
}

// HasActiveFilters returns true if any predicate is in the chain
func (fc *FilterChain) HasActiveFilters() bool {
	return len(fc.predicates) > 0
}

// Len returns the number of active predicates
func (fc *FilterChain) Len() int {
	return len(fc.predicates)
}

// Apply returns the records passing every predicate, in their original order.
// The input slice is never modified.
func (fc *FilterChain) Apply(records []Record) []Record {
	if !fc.HasActiveFilters() {
		return slices.Clip(records)
	}

	filtered := make([]Record, 0, len(records))
	for i := range records {
		passesAll := true
		for _, predicate := range fc.predicates {
			if !predicate.Matches(&records[i]) {
				passesAll = false
				break
			}
		}
		if passesAll {
			filtered = append(filtered, records[i])
		}
	}
	return filtered
}

// Criteria holds the current filter values of a page. Empty strings mean
// "no filter selected".
type Criteria struct {
	Search   string
	Province string
	City     string

	// RequireClassification drops records with an empty classification even
	// when no location filter is selected.
	RequireClassification bool
}

// IsZero reports whether no predicate value is set
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Province == "" && c.City == ""
}

// Chain builds the filter chain for these criteria.
func (c Criteria) Chain() *FilterChain {
	fc := NewFilterChain()
	if c.RequireClassification {
		fc.Add(classificationPresent{})
	}
	fc.Add(NewTokenPredicate(TokenProvince, c.Province))
	fc.Add(NewTokenPredicate(TokenCity, c.City))
	fc.Add(NewSearchPredicate(c.Search))
	return fc
}

// Filter applies criteria to records. It is a pure function of its inputs.
func Filter(records []Record, criteria Criteria) []Record {
	return criteria.Chain().Apply(records)
}
