package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/pb33f/jobific/motor"
)

// PageKind selects which dataset a page shows.
type PageKind int

const (
	KindCompanies PageKind = iota
	KindJobs
)

func (k PageKind) String() string {
	if k == KindJobs {
		return "jobs"
	}
	return "companies"
}

func (k PageKind) title() string {
	if k == KindJobs {
		return "Job Listings"
	}
	return "Recommended Companies"
}

func (k PageKind) loadingTitle() string {
	if k == KindJobs {
		return "Fetching job listings"
	}
	return "Loading companies"
}

// ModalType identifies which picker is open.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalProvince
	ModalCity
)

// PageOptions configures a page model.
type PageOptions struct {
	Kind       PageKind
	Controller *motor.Controller

	// Regions are the region choices on the jobs page; companies derive
	// their provinces from the loaded data.
	Regions []string

	// InitialPage is applied after the first successful load.
	InitialPage int

	Context context.Context
	Logger  *slog.Logger
}

// PageModel is the bubbletea model for one page. It renders the controller's
// current page and feeds user input back into it.
type PageModel struct {
	kind       PageKind
	controller *motor.Controller
	regions    []string
	logger     *slog.Logger
	ctx        context.Context

	table   table.Model
	columns []table.Column
	rows    []table.Row
	page    []motor.Record
	state   motor.PageState

	searchInput textinput.Model
	searching   bool

	activeModal ModalType
	picker      optionPicker

	width    int
	height   int
	ready    bool
	quitting bool
	notice   string

	loadState      LoadState
	loadingSpinner spinner.Model
	loadTime       time.Duration
	fetchSeq       uint64
	appliedSeq     uint64
	initialPage    int
	pageApplied    bool

	err error
}

// NewPageModel creates a page and registers it as the controller's renderer.
func NewPageModel(opts PageOptions) (*PageModel, error) {
	if opts.Controller == nil {
		return nil, errors.New("page requires a controller")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := textinput.New()
	input.Placeholder = "company name"
	input.Prompt = "/ "
	input.CharLimit = searchCharLimit

	m := &PageModel{
		kind:           opts.Kind,
		controller:     opts.Controller,
		regions:        opts.Regions,
		logger:         logger,
		ctx:            fetchContext(opts.Context),
		searchInput:    input,
		loadState:      LoadStateLoading,
		loadingSpinner: createLoadingSpinner(),
		initialPage:    opts.InitialPage,
	}
	m.controller.SetRenderer(m)

	return m, nil
}

// Render implements motor.Renderer; the controller calls it on every change.
func (m *PageModel) Render(page []motor.Record, state motor.PageState) {
	m.page = page
	m.state = state
	m.rows = buildRows(m.kind, page, state, m.columns)
	m.notice = ""

	if m.ready {
		m.table.SetRows(m.rows)
		m.table.SetCursor(0)
	}
}

func (m *PageModel) Init() tea.Cmd {
	return m.startLoading()
}

func (m *PageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if m.loadState == LoadStateLoading {
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case loadCompleteMsg:
		m.applyLoad(msg)
		return m, nil

	case loadErrorMsg:
		m.noteArrival(msg.seq)
		m.loadState = LoadStateError
		m.err = msg.err
		m.logger.Error("load failed", "page", m.kind.String(), "seq", msg.seq, "error", msg.err)
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		if handled, cmd := m.handleKey(msg.String()); handled {
			return m, cmd
		}
		if m.searching {
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.syncSearch()
			return m, cmd
		}
	}

	tableLive := m.loadState == LoadStateLoaded ||
		(m.loadState == LoadStateLoading && m.interactiveWhileLoading())
	if tableLive && m.ready && m.activeModal == ModalNone {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *PageModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.loadState {
	case LoadStateLoading:
		if m.ready && (m.controller.Loaded() || m.activeModal != ModalNone || m.searching) &&
			m.interactiveWhileLoading() {
			return m.render()
		}
		return m.renderLoadingView()
	case LoadStateError:
		return m.renderErrorView()
	case LoadStateLoaded:
		if !m.ready {
			return "Initializing..."
		}
		return m.render()
	default:
		return "Unknown state"
	}
}

// applyLoad installs a fetch result. The first successful load also moves
// to the requested starting page.
func (m *PageModel) applyLoad(msg loadCompleteMsg) {
	m.noteArrival(msg.seq)
	m.loadState = LoadStateLoaded
	m.loadTime = msg.duration
	m.err = nil

	m.controller.SetRecords(msg.records)

	if !m.pageApplied {
		m.pageApplied = true
		if m.initialPage > motor.FirstPage && !m.controller.ChangePage(m.initialPage) {
			m.logger.Warn("requested page out of range",
				"page", m.initialPage, "total_pages", m.controller.State().TotalPages)
		}
	}
}

// handleKey processes page-level keys. It reports false for keys that should
// fall through to the search input or the table.
func (m *PageModel) handleKey(key string) (bool, tea.Cmd) {
	if key == "ctrl+c" {
		m.quitting = true
		return true, tea.Quit
	}

	switch m.loadState {
	case LoadStateLoading:
		if !m.interactiveWhileLoading() {
			if key == "q" {
				m.quitting = true
				return true, tea.Quit
			}
			return true, nil
		}
	case LoadStateError:
		switch key {
		case "q", "esc":
			m.quitting = true
			return true, tea.Quit
		case "r":
			return true, m.startLoading()
		}
		return true, nil
	}

	if m.activeModal != ModalNone {
		return m.handlePickerKeys(key)
	}

	if m.searching {
		switch key {
		case "esc":
			m.stopSearch(true)
			return true, nil
		case "enter":
			m.stopSearch(false)
			return true, nil
		}
		return false, nil
	}

	switch key {
	case "q":
		m.quitting = true
		return true, tea.Quit

	case "/":
		m.searching = true
		m.resize(m.width, m.height)
		return true, m.searchInput.Focus()

	case "p":
		m.openPicker(ModalProvince)
		return true, nil

	case "c":
		m.openPicker(ModalCity)
		return true, nil

	case "left", "h":
		m.controller.PreviousPage()
		return true, nil

	case "right", "l":
		m.controller.NextPage()
		return true, nil

	case "r":
		return true, m.startLoading()

	case "esc":
		return true, m.clearFilters()

	case "enter":
		if record := m.selectedRecord(); record != nil {
			m.notice = detailLine(m.kind, record)
		}
		return true, nil
	}

	return false, nil
}

// interactiveWhileLoading reports whether input keeps working during a
// fetch. On the jobs page a region pick starts another fetch that races the
// one in flight; whichever resolves last is shown.
func (m *PageModel) interactiveWhileLoading() bool {
	return m.kind == KindJobs
}

func (m *PageModel) syncSearch() {
	if value := m.searchInput.Value(); value != m.controller.Criteria().Search {
		m.controller.SetSearch(value)
	}
}

// stopSearch leaves search mode, optionally discarding the term.
func (m *PageModel) stopSearch(discard bool) {
	m.searching = false
	m.searchInput.Blur()
	if discard {
		m.searchInput.SetValue("")
		m.syncSearch()
	}
	m.resize(m.width, m.height)
}

// clearFilters resets every criterion. On the jobs page a cleared region
// triggers a fresh fetch, as any region change does.
func (m *PageModel) clearFilters() tea.Cmd {
	previous := m.controller.Criteria()
	if previous.Search == "" && previous.Province == "" && previous.City == "" {
		return nil
	}

	m.searchInput.SetValue("")
	m.controller.SetCriteria(motor.Criteria{RequireClassification: previous.RequireClassification})

	if m.kind == KindJobs && previous.Province != "" {
		return m.startLoading()
	}
	return nil
}

// selectRegion applies a province or region choice.
func (m *PageModel) selectRegion(value string) tea.Cmd {
	if value == m.controller.Criteria().Province {
		return nil
	}
	m.controller.SetProvince(value)
	if m.kind == KindJobs {
		return m.startLoading()
	}
	return nil
}

func (m *PageModel) selectedRecord() *motor.Record {
	if !m.ready {
		return nil
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.page) {
		return nil
	}
	return &m.page[cursor]
}

func (m *PageModel) resize(width, height int) {
	m.width = width
	m.height = height
	if width <= 0 || height <= 0 {
		return
	}

	m.columns = buildColumns(m.kind, width)
	m.rows = buildRows(m.kind, m.page, m.state, m.columns)

	if !m.ready {
		m.table = table.New(
			table.WithColumns(m.columns),
			table.WithRows(m.rows),
			table.WithFocused(true),
			table.WithHeight(m.tableHeight()),
			table.WithWidth(width),
		)
		m.table = ApplyTableStyles(m.table)
		m.ready = true
		return
	}

	m.table.SetColumns(m.columns)
	m.table.SetRows(m.rows)
	m.table.SetHeight(m.tableHeight())
	m.table.SetWidth(width)
}

func (m *PageModel) tableHeight() int {
	h := m.height - tableVerticalPadding
	if m.searching {
		h -= searchBarHeight
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Controller exposes the page's controller
func (m *PageModel) Controller() *motor.Controller {
	return m.controller
}

// Err returns the last load error, if any
func (m *PageModel) Err() error {
	return m.err
}
