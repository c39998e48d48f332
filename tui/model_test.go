package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/jobific/motor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLoader struct {
	records []motor.Record
	err     error
}

func (l *staticLoader) Name() string { return "static" }

func (l *staticLoader) Load(context.Context) ([]motor.Record, error) {
	return l.records, l.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testAddresses = []string{"서울 강남구", "부산 해운대구", "경기 성남시"}

func companyRecords(n int) []motor.Record {
	records := make([]motor.Record, n)
	for i := range records {
		records[i] = motor.Record{
			Name:           fmt.Sprintf("Company %02d", i),
			Classification: testAddresses[i%len(testAddresses)],
		}
	}
	return records
}

func jobRecords() []motor.Record {
	return []motor.Record{
		{Name: "Acme", Classification: "서울 강남구", Fields: map[string]string{
			motor.FieldTitle: "Backend Engineer", motor.FieldCompany: "Acme",
			motor.FieldRegion: "서울 강남구", motor.FieldDetailURL: "https://example.test/1",
		}},
		{Name: "Haeundae Fish", Classification: "부산 해운대구", Fields: map[string]string{
			motor.FieldCompany: "Haeundae Fish", motor.FieldRegion: "부산 해운대구",
		}},
	}
}

func newTestPage(t *testing.T, kind PageKind, records []motor.Record, initialPage int) *PageModel {
	t.Helper()
	controller := motor.NewController(&staticLoader{records: records}, nil, motor.ControllerOptions{
		PageSize:              10,
		RequireClassification: kind == KindCompanies,
		Logger:                quietLogger(),
	})
	m, err := NewPageModel(PageOptions{
		Kind:        kind,
		Controller:  controller,
		Regions:     []string{"서울", "부산"},
		InitialPage: initialPage,
		Logger:      quietLogger(),
	})
	require.NoError(t, err)
	m.resize(120, 40)
	return m
}

// deliver simulates a fetch resolving with records.
func deliver(m *PageModel, seq uint64, records []motor.Record) {
	m.Update(loadCompleteMsg{seq: seq, records: records})
}

func loadPage(t *testing.T, kind PageKind, records []motor.Record, initialPage int) *PageModel {
	t.Helper()
	m := newTestPage(t, kind, records, initialPage)
	require.NotNil(t, m.Init())
	deliver(m, m.fetchSeq, records)
	require.Equal(t, LoadStateLoaded, m.loadState)
	return m
}

func TestNewPageModel_RequiresController(t *testing.T) {
	_, err := NewPageModel(PageOptions{})
	assert.Error(t, err)
}

func TestPageModel_LoadRendersFirstPage(t *testing.T) {
	m := loadPage(t, KindCompanies, companyRecords(25), 0)

	assert.Len(t, m.rows, 10)
	assert.Equal(t, "1", m.rows[0][0])
	assert.Equal(t, "Company 00", m.rows[0][1])
	assert.Equal(t, "1/3", m.state.String())
	assert.Contains(t, m.View(), "1/3")
}

func TestPageModel_Paging(t *testing.T) {
	m := loadPage(t, KindCompanies, companyRecords(25), 0)

	handled, _ := m.handleKey("right")
	assert.True(t, handled)
	assert.Equal(t, 2, m.state.CurrentPage)
	assert.Equal(t, "11", m.rows[0][0])

	m.handleKey("l")
	assert.Equal(t, 3, m.state.CurrentPage)
	assert.Len(t, m.rows, 5)

	m.handleKey("right")
	assert.Equal(t, 3, m.state.CurrentPage, "next on last page is a no-op")

	m.handleKey("h")
	m.handleKey("left")
	m.handleKey("left")
	assert.Equal(t, 1, m.state.CurrentPage)
}

func TestPageModel_InitialPage(t *testing.T) {
	m := loadPage(t, KindCompanies, companyRecords(25), 3)
	assert.Equal(t, 3, m.state.CurrentPage)

	out := loadPage(t, KindCompanies, companyRecords(25), 9)
	assert.Equal(t, 1, out.state.CurrentPage, "out of range start page is ignored")
}

func TestPageModel_Search(t *testing.T) {
	m := loadPage(t, KindCompanies, companyRecords(25), 0)
	m.handleKey("right")

	handled, _ := m.handleKey("/")
	assert.True(t, handled)
	assert.True(t, m.searching)

	m.searchInput.SetValue("company 1")
	m.syncSearch()

	assert.Equal(t, "company 1", m.controller.Criteria().Search)
	assert.Equal(t, 10, m.state.TotalItems)
	assert.Equal(t, 1, m.state.CurrentPage, "criteria change resets to the first page")

	handled, _ = m.handleKey("q")
	assert.False(t, handled, "typing while searching reaches the input")

	m.handleKey("enter")
	assert.False(t, m.searching)
	assert.Equal(t, "company 1", m.controller.Criteria().Search, "enter keeps the term")

	m.handleKey("/")
	m.handleKey("esc")
	assert.Empty(t, m.controller.Criteria().Search)
	assert.Equal(t, 25, m.state.TotalItems)
}

func TestPageModel_ProvinceAndCityPickers(t *testing.T) {
	m := loadPage(t, KindCompanies, companyRecords(25), 0)

	m.handleKey("c")
	assert.Equal(t, ModalNone, m.activeModal, "city needs a province")
	assert.NotEmpty(t, m.notice)

	m.handleKey("p")
	require.Equal(t, ModalProvince, m.activeModal)
	assert.Equal(t, "", m.picker.options[0])

	for m.picker.value() != "서울" {
		m.handleKey("down")
	}
	_, cmd := m.handleKey("enter")
	assert.Nil(t, cmd, "companies filter locally")
	assert.Equal(t, ModalNone, m.activeModal)
	assert.Equal(t, "서울", m.controller.Criteria().Province)
	assert.Equal(t, 9, m.state.TotalItems)

	m.handleKey("c")
	require.Equal(t, ModalCity, m.activeModal)
	assert.Equal(t, []string{"", "강남구"}, m.picker.options)
	m.handleKey("down")
	m.handleKey("enter")
	assert.Equal(t, "강남구", m.controller.Criteria().City)

	m.handleKey("esc")
	assert.Equal(t, motor.Criteria{RequireClassification: true}, m.controller.Criteria())
	assert.Equal(t, 25, m.state.TotalItems)
}

func TestPageModel_PickerEscapeKeepsSelection(t *testing.T) {
	m := loadPage(t, KindCompanies, companyRecords(6), 0)

	m.handleKey("p")
	m.handleKey("down")
	m.handleKey("esc")
	assert.Equal(t, ModalNone, m.activeModal)
	assert.Empty(t, m.controller.Criteria().Province)
}

func TestPageModel_JobsRegionChangeRefetches(t *testing.T) {
	records := jobRecords()
	m := loadPage(t, KindJobs, records, 0)
	first := m.fetchSeq

	m.handleKey("p")
	require.Equal(t, ModalProvince, m.activeModal)
	assert.Equal(t, []string{"", "서울", "부산"}, m.picker.options)

	m.handleKey("down")
	_, cmd := m.handleKey("enter")
	assert.NotNil(t, cmd)
	assert.Equal(t, first+1, m.fetchSeq)
	assert.Equal(t, LoadStateLoading, m.loadState)

	deliver(m, m.fetchSeq, records)
	assert.Equal(t, "서울", m.controller.Criteria().Province)
	assert.Equal(t, 1, m.state.TotalItems)
	assert.Equal(t, "Backend Engineer", m.rows[0][1])

	m.handleKey("c")
	assert.Equal(t, ModalNone, m.activeModal, "jobs have no city picker")
}

func TestPageModel_JobsFallbacksAndDetail(t *testing.T) {
	m := loadPage(t, KindJobs, jobRecords(), 0)

	assert.Equal(t, fallbackTitle, m.rows[1][1])
	assert.Equal(t, truncateCell(fallbackSalary, m.columns[4].Width), m.rows[1][4])
	assert.Equal(t, truncateCell(fallbackEmploymentType, m.columns[5].Width), m.rows[1][5])

	m.handleKey("enter")
	assert.Equal(t, "https://example.test/1", m.notice)
}

func TestPageModel_LastResolvedWins(t *testing.T) {
	m := newTestPage(t, KindJobs, nil, 0)
	m.startLoading()
	m.startLoading()

	newer := jobRecords()
	older := jobRecords()[:1]

	deliver(m, 2, newer)
	deliver(m, 1, older)

	assert.Equal(t, uint64(2), m.appliedSeq)
	assert.Len(t, m.controller.Records(), 1, "a late older response still replaces the data")
}

func TestPageModel_RegionPicksRaceWhileLoading(t *testing.T) {
	m := loadPage(t, KindJobs, jobRecords(), 0)

	m.handleKey("p")
	m.handleKey("down")
	_, cmd := m.handleKey("enter")
	require.NotNil(t, cmd)
	require.Equal(t, uint64(2), m.fetchSeq)
	require.Equal(t, LoadStateLoading, m.loadState)

	// second pick before the first fetch resolves
	handled, _ := m.handleKey("p")
	assert.True(t, handled)
	require.Equal(t, ModalProvince, m.activeModal)
	assert.Contains(t, m.View(), "Region")

	m.handleKey("down")
	handled, cmd = m.handleKey("enter")
	assert.True(t, handled)
	assert.NotNil(t, cmd)
	assert.Equal(t, uint64(3), m.fetchSeq)
	assert.Equal(t, "부산", m.controller.Criteria().Province)

	deliver(m, 3, jobRecords())
	assert.Equal(t, 0, m.state.TotalItems)
	deliver(m, 2, jobRecords()[:1])

	assert.Equal(t, uint64(3), m.appliedSeq)
	assert.Len(t, m.controller.Records(), 1, "the fetch that resolved last supplies the data")
	assert.Equal(t, "부산", m.controller.Criteria().Province)
	assert.Equal(t, 0, m.state.TotalItems)
	assert.Equal(t, LoadStateLoaded, m.loadState)
}

func TestPageModel_JobsSearchWhileLoading(t *testing.T) {
	m := loadPage(t, KindJobs, jobRecords(), 0)
	m.handleKey("r")
	require.Equal(t, LoadStateLoading, m.loadState)

	handled, _ := m.handleKey("/")
	assert.True(t, handled)
	assert.True(t, m.searching)

	m.searchInput.SetValue("acme")
	m.syncSearch()
	assert.Equal(t, 1, m.state.TotalItems)
	assert.Equal(t, "Backend Engineer", m.rows[0][1])

	handled, _ = m.handleKey("esc")
	assert.True(t, handled)
	assert.False(t, m.searching)
	assert.Equal(t, 2, m.state.TotalItems)
}

func TestPageModel_CompaniesIgnoreKeysWhileLoading(t *testing.T) {
	m := newTestPage(t, KindCompanies, companyRecords(3), 0)
	m.startLoading()

	handled, cmd := m.handleKey("p")
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.Equal(t, ModalNone, m.activeModal)
	assert.Equal(t, m.renderLoadingView(), m.View())

	_, cmd = m.handleKey("q")
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestPageModel_LoadErrorAndRetry(t *testing.T) {
	m := newTestPage(t, KindJobs, nil, 0)
	m.startLoading()

	loadErr := &motor.LoadError{Source: "work24", Err: errors.New("boom")}
	m.Update(loadErrorMsg{seq: m.fetchSeq, err: loadErr})

	assert.Equal(t, LoadStateError, m.loadState)
	assert.ErrorIs(t, m.Err(), loadErr)
	assert.Contains(t, m.View(), "boom")

	handled, cmd := m.handleKey("r")
	assert.True(t, handled)
	assert.NotNil(t, cmd)
	assert.Equal(t, LoadStateLoading, m.loadState)
}

func TestPageModel_ErrorViewStyle(t *testing.T) {
	m := newTestPage(t, KindJobs, nil, 0)
	m.startLoading()
	m.Update(loadErrorMsg{seq: m.fetchSeq, err: errors.New("timeout")})

	want := ErrorStyle.Width(120).Height(40).Align(lipgloss.Center, lipgloss.Center).
		Render("❌ timeout\n\nPress 'r' to retry or 'q' to quit")
	assert.Equal(t, want, m.View())
}

func TestPageModel_QuitKeys(t *testing.T) {
	m := loadPage(t, KindCompanies, companyRecords(3), 0)
	handled, cmd := m.handleKey("q")
	assert.True(t, handled)
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestPageModel_EmptyView(t *testing.T) {
	m := loadPage(t, KindCompanies, companyRecords(3), 0)
	m.searchInput.SetValue("nobody")
	m.syncSearch()

	assert.Empty(t, m.rows)
	assert.Equal(t, "1/0", m.state.String())
	assert.Contains(t, m.View(), "No matching results")
}
