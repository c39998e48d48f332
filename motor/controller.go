package motor

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ControllerOptions configures a page controller.
type ControllerOptions struct {
	PageSize int

	// ProvinceOrder restricts and orders province options; empty offers all.
	ProvinceOrder []string

	// RequireClassification drops records without a classification.
	RequireClassification bool

	Logger *slog.Logger
}

// Controller owns the state of one page: the loaded records, the current
// criteria, the filtered view and the page position. It is driven from a
// single event loop and is not safe for concurrent use.
type Controller struct {
	loader   Loader
	renderer Renderer
	logger   *slog.Logger

	records  []Record
	criteria Criteria
	view     []Record
	pager    *Paginator
	facets   *Facets
	order    []string

	loaded      bool
	fingerprint uint64
	loadedAt    time.Time
}

// NewController creates a controller. The renderer may be nil for headless use.
func NewController(loader Loader, renderer Renderer, opts ControllerOptions) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		loader:   loader,
		renderer: renderer,
		logger:   logger,
		criteria: Criteria{RequireClassification: opts.RequireClassification},
		pager:    NewPaginator(opts.PageSize),
		facets:   BuildFacets(nil, opts.ProvinceOrder),
		order:    opts.ProvinceOrder,
	}
}

// SetRenderer replaces the renderer used on every redraw
func (c *Controller) SetRenderer(renderer Renderer) {
	c.renderer = renderer
}

// Fetch runs the loader without touching controller state, so it can be
// called from a goroutine. Failures and empty results come back as *LoadError.
func (c *Controller) Fetch(ctx context.Context) ([]Record, error) {
	if c.loader == nil {
		return nil, &LoadError{Err: errors.New("no loader configured")}
	}

	source := c.loader.Name()
	records, err := c.loader.Load(ctx)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &LoadError{Source: source, Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Source: source, Err: ErrEmptyDataset}
	}
	return records, nil
}

// Load fetches and installs a fresh record list.
func (c *Controller) Load(ctx context.Context) error {
	start := time.Now()
	records, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Error("load failed", "error", err)
		return err
	}
	c.SetRecords(records)
	c.logger.Debug("load complete", "records", len(records), "duration", time.Since(start))
	return nil
}

// SetRecords replaces the record list wholesale and refilters with the
// current criteria.
func (c *Controller) SetRecords(records []Record) {
	fingerprint := Fingerprint(records)
	if c.loaded && fingerprint == c.fingerprint {
		c.logger.Debug("reloaded dataset is unchanged", "records", len(records))
	}

	c.records = records
	c.fingerprint = fingerprint
	c.loaded = true
	c.loadedAt = time.Now()
	c.facets = BuildFacets(records, c.order)

	c.logger.Info("dataset installed",
		"records", len(records),
		"provinces", len(c.facets.Provinces()),
		"fingerprint", fingerprint)

	c.refilter()
}

// SetCriteria replaces every criterion at once.
func (c *Controller) SetCriteria(criteria Criteria) {
	c.criteria = criteria
	c.refilter()
}

// SetSearch updates the name search term
func (c *Controller) SetSearch(term string) {
	c.criteria.Search = term
	c.refilter()
}

// SetProvince selects a province (or region) and clears the city selection,
// since cities belong to a province.
func (c *Controller) SetProvince(province string) {
	c.criteria.Province = province
	c.criteria.City = ""
	c.refilter()
}

// SetCity selects a city within the current province
func (c *Controller) SetCity(city string) {
	c.criteria.City = city
	c.refilter()
}

// ChangePage moves to target if it is a valid page, then redraws.
func (c *Controller) ChangePage(target int) bool {
	if !c.pager.ChangePage(target) {
		c.logger.Debug("page change ignored", "target", target, "total_pages", c.pager.TotalPages())
		return false
	}
	c.render()
	return true
}

// NextPage moves forward one page
func (c *Controller) NextPage() bool {
	return c.ChangePage(c.pager.CurrentPage() + 1)
}

// PreviousPage moves back one page
func (c *Controller) PreviousPage() bool {
	return c.ChangePage(c.pager.CurrentPage() - 1)
}

// Refresh redraws the current page without changing any state
func (c *Controller) Refresh() {
	c.render()
}

// Criteria returns the current filter criteria
func (c *Controller) Criteria() Criteria {
	return c.criteria
}

// Records returns the full record list
func (c *Controller) Records() []Record {
	return c.records
}

// View returns the filtered view
func (c *Controller) View() []Record {
	return c.view
}

// Page returns the records of the current page
func (c *Controller) Page() []Record {
	return Slice(c.pager, c.view)
}

// State returns the current pagination metadata
func (c *Controller) State() PageState {
	return c.pager.State()
}

// Facets returns province and city options derived from the loaded data
func (c *Controller) Facets() *Facets {
	return c.facets
}

// Loaded reports whether a dataset has been installed
func (c *Controller) Loaded() bool {
	return c.loaded
}

// LoadedAt returns when the current dataset was installed
func (c *Controller) LoadedAt() time.Time {
	return c.loadedAt
}

// Source returns the loader name
func (c *Controller) Source() string {
	if c.loader == nil {
		return ""
	}
	return c.loader.Name()
}

func (c *Controller) refilter() {
	c.view = Filter(c.records, c.criteria)
	c.pager.Reset(len(c.view))
	c.logger.Debug("filter applied",
		"search", c.criteria.Search,
		"province", c.criteria.Province,
		"city", c.criteria.City,
		"matches", len(c.view),
		"total", len(c.records))
	c.render()
}

func (c *Controller) render() {
	if c.renderer == nil {
		return
	}
	c.renderer.Render(c.Page(), c.pager.State())
}
