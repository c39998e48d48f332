package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/jobific/motor"
)

type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateLoaded
	LoadStateError
)

// loadCompleteMsg and loadErrorMsg carry the sequence number of the fetch
// that produced them.
type loadCompleteMsg struct {
	seq      uint64
	records  []motor.Record
	duration time.Duration
}

type loadErrorMsg struct {
	seq uint64
	err error
}

// startLoading issues a new fetch. Responses are applied in arrival order,
// so a slow older fetch can overwrite a newer one; that is logged, not
// prevented.
func (m *PageModel) startLoading() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	controller := m.controller
	ctx := m.ctx

	// a fetch already in flight keeps its spinner ticking
	spinning := m.loadState == LoadStateLoading
	m.loadState = LoadStateLoading
	m.logger.Debug("fetch started", "page", m.kind.String(), "seq", seq, "source", controller.Source())

	fetch := func() tea.Msg {
		start := time.Now()
		records, err := controller.Fetch(ctx)
		if err != nil {
			return loadErrorMsg{seq: seq, err: err}
		}
		return loadCompleteMsg{seq: seq, records: records, duration: time.Since(start)}
	}

	if spinning {
		return fetch
	}
	return tea.Batch(m.loadingSpinner.Tick, fetch)
}

// noteArrival records the newest applied sequence and reports arrivals that
// resolved out of order.
func (m *PageModel) noteArrival(seq uint64) {
	if seq < m.appliedSeq {
		m.logger.Warn("stale fetch resolved after a newer one; applying anyway",
			"page", m.kind.String(), "seq", seq, "newest_applied", m.appliedSeq)
		return
	}
	m.appliedSeq = seq
}

func (m *PageModel) renderLoadingView() string {
	spinnerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	title := TitleStyle.Render(m.kind.loadingTitle())
	source := SubtitleStyle.Render(fmt.Sprintf("\n%s", m.controller.Source()))

	return spinnerStyle.Render(fmt.Sprintf("%s %s%s", m.loadingSpinner.View(), title, source))
}

func (m *PageModel) renderErrorView() string {
	errorStyle := ErrorStyle.
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	errorMsg := fmt.Sprintf("❌ %v\n\nPress 'r' to retry or 'q' to quit", m.err)
	return errorStyle.Render(errorMsg)
}

func createLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(RGBPink)
	return s
}

// fetchContext is used by fetches started from the event loop.
func fetchContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
