package motor

import (
	"errors"
	"fmt"
)

// Page size limits.
const (
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 1000
	FirstPage       = 1
)

// ErrInvalidPageSize is returned by ValidatePageSize.
var ErrInvalidPageSize = errors.New("page size must be between 1 and 1000")

// ValidatePageSize checks a user supplied page size.
func ValidatePageSize(size int) error {
	if size < MinPageSize || size > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, size)
	}
	return nil
}

// PageState is the pagination metadata handed to renderers.
type PageState struct {
	CurrentPage int
	PageSize    int
	TotalPages  int
	TotalItems  int
	HasPrevious bool
	HasNext     bool
}

// StartIndex is the index in the filtered view of the first record on the page.
func (s PageState) StartIndex() int {
	return (s.CurrentPage - 1) * s.PageSize
}

// String renders "current/total"; an empty view shows 1/0.
func (s PageState) String() string {
	return fmt.Sprintf("%d/%d", s.CurrentPage, s.TotalPages)
}

// Paginator tracks the current page over a filtered view of known length.
type Paginator struct {
	pageSize   int
	current    int
	totalItems int
}

// NewPaginator creates a paginator. Out of range sizes fall back to DefaultPageSize.
func NewPaginator(pageSize int) *Paginator {
	if ValidatePageSize(pageSize) != nil {
		pageSize = DefaultPageSize
	}
	return &Paginator{
		pageSize: pageSize,
		current:  FirstPage,
	}
}

// Reset sets a new item count and unconditionally returns to the first page.
func (p *Paginator) Reset(totalItems int) {
	if totalItems < 0 {
		totalItems = 0
	}
	p.totalItems = totalItems
	p.current = FirstPage
}

// PageSize returns the fixed page size
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// TotalItems returns the size of the view being paginated
func (p *Paginator) TotalItems() int {
	return p.totalItems
}

// CurrentPage returns the 1-based current page
func (p *Paginator) CurrentPage() int {
	return p.current
}

// TotalPages returns ceil(totalItems / pageSize), or 0 for an empty view.
func (p *Paginator) TotalPages() int {
	if p.totalItems == 0 {
		return 0
	}
	pages := p.totalItems / p.pageSize
	if p.totalItems%p.pageSize > 0 {
		pages++
	}
	return pages
}

// ChangePage moves to target when 1 <= target <= TotalPages and reports
// whether the move was accepted. Anything else is ignored.
func (p *Paginator) ChangePage(target int) bool {
	if target < FirstPage || target > p.TotalPages() {
		return false
	}
	p.current = target
	return true
}

// Next moves forward one page if possible
func (p *Paginator) Next() bool {
	return p.ChangePage(p.current + 1)
}

// Previous moves back one page if possible
func (p *Paginator) Previous() bool {
	return p.ChangePage(p.current - 1)
}

// Bounds returns the half-open index range [start, end) of the current page.
func (p *Paginator) Bounds() (int, int) {
	start := (p.current - 1) * p.pageSize
	if start > p.totalItems {
		start = p.totalItems
	}
	end := start + p.pageSize
	if end > p.totalItems {
		end = p.totalItems
	}
	return start, end
}

// State returns a snapshot of the pagination metadata.
func (p *Paginator) State() PageState {
	total := p.TotalPages()
	return PageState{
		CurrentPage: p.current,
		PageSize:    p.pageSize,
		TotalPages:  total,
		TotalItems:  p.totalItems,
		HasPrevious: p.current > FirstPage,
		HasNext:     p.current < total,
	}
}

// Slice returns the items of the current page. items must be the view the
// paginator was last reset with.
func Slice[T any](p *Paginator, items []T) []T {
	start, end := p.Bounds()
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	return items[start:end]
}
