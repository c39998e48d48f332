package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// counts are grouped the Korean way: 1,234
var counter = message.NewPrinter(language.Korean)

func (m *PageModel) render() string {
	var builder strings.Builder

	builder.WriteString(m.renderTitle())
	builder.WriteString("\n")

	if m.activeModal != ModalNone {
		builder.WriteString(lipgloss.Place(m.width, m.tableHeight()+1,
			lipgloss.Center, lipgloss.Center, m.renderPickerModal()))
	} else {
		builder.WriteString(m.renderTable())
	}

	builder.WriteString("\n")
	if m.searching {
		builder.WriteString(m.renderSearchBar())
		builder.WriteString("\n")
	}
	builder.WriteString(m.renderStatusBar())

	return builder.String()
}

func (m *PageModel) renderTable() string {
	if len(m.page) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Faint(true).
			Align(lipgloss.Center, lipgloss.Center).
			Width(m.width).
			Height(m.tableHeight())
		return emptyStyle.Render("No matching results")
	}

	// post-process the table view rather than styling cells, which would
	// break the table's width calculations
	return ColorizeTableOutput(m.table.View(), m.table.Cursor(), m.rows, m.controller.Criteria().Search)
}

func (m *PageModel) renderTitle() string {
	titleStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(m.width).
		BorderForeground(RGBBlue).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderBottom(true)

	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("jobific: %s | ", m.kind.title()))

	total := len(m.controller.Records())
	matches := m.state.TotalItems
	var count string
	if matches == total {
		count = counter.Sprintf("(%d records", total)
	} else {
		count = counter.Sprintf("(%d of %d records", matches, total)
	}
	if m.loadTime > 0 {
		count += fmt.Sprintf(", loaded in %v", m.loadTime.Round(time.Millisecond))
	}
	count += ")"

	if m.loadState == LoadStateLoading {
		count += " " + m.loadingSpinner.View()
	}

	return titleStyle.Render(title + lipgloss.NewStyle().Faint(true).Render(count))
}

func (m *PageModel) renderSearchBar() string {
	searchStyle := lipgloss.NewStyle().
		Width(m.width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		Padding(0, 1)

	return searchStyle.Render(m.searchInput.View())
}

func (m *PageModel) renderStatusBar() string {
	var parts []string

	switch {
	case m.activeModal != ModalNone:
		parts = append(parts, "↑/↓: Navigate", "Enter: Select", "Esc: Close")
	case m.searching:
		parts = append(parts, "Type to filter", "Enter: Keep", "Esc: Clear")
	default:
		parts = append(parts, "←/→: Page", "/: Search", "p: "+m.regionLabel())
		if m.kind == KindCompanies {
			parts = append(parts, "c: City")
		}
		parts = append(parts, "r: Reload", "q: Quit")
	}

	parts = append(parts, "Page "+m.state.String())

	status := HelpStyle.Render(strings.Join(parts, " | "))
	if tags := m.renderFilterTags(); tags != "" {
		status += "  " + tags
	}
	if m.notice != "" {
		status += "\n" + NoticeStyle.Render(m.notice)
	}
	return status
}

func (m *PageModel) regionLabel() string {
	if m.kind == KindJobs {
		return "Region"
	}
	return "Province"
}

// renderFilterTags lists the active criteria.
func (m *PageModel) renderFilterTags() string {
	criteria := m.controller.Criteria()
	var tags []string
	if criteria.Search != "" {
		tags = append(tags, fmt.Sprintf("search:%q", criteria.Search))
	}
	if criteria.Province != "" {
		tags = append(tags, strings.ToLower(m.regionLabel())+":"+criteria.Province)
	}
	if criteria.City != "" {
		tags = append(tags, "city:"+criteria.City)
	}
	if len(tags) == 0 {
		return ""
	}
	return FilterTagStyle.Render("[" + strings.Join(tags, " ") + "]")
}
