package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// optionPicker is a single-choice list. Index 0 is always the "all" entry,
// which maps to an empty selection.
type optionPicker struct {
	title   string
	options []string
	cursor  int
	offset  int
}

func newOptionPicker(title string, values []string, current string) optionPicker {
	options := make([]string, 0, len(values)+1)
	options = append(options, "")
	options = append(options, values...)

	p := optionPicker{title: title, options: options}
	for i, v := range options {
		if v == current {
			p.cursor = i
			break
		}
	}
	p.scrollToCursor()
	return p
}

func (p *optionPicker) value() string {
	if p.cursor < 0 || p.cursor >= len(p.options) {
		return ""
	}
	return p.options[p.cursor]
}

func (p *optionPicker) move(delta int) {
	n := len(p.options)
	if n == 0 {
		return
	}
	p.cursor = (p.cursor + delta + n) % n
	p.scrollToCursor()
}

func (p *optionPicker) scrollToCursor() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerVisibleLines {
		p.offset = p.cursor - pickerVisibleLines + 1
	}
}

// openPicker opens the province (region) or city picker. The city picker
// needs a selected province that has cities.
func (m *PageModel) openPicker(modal ModalType) {
	criteria := m.controller.Criteria()

	switch modal {
	case ModalProvince:
		title, values := "Province", m.controller.Facets().Provinces()
		if m.kind == KindJobs {
			title, values = "Region", m.regions
		}
		m.picker = newOptionPicker(title, values, criteria.Province)

	case ModalCity:
		if m.kind == KindJobs {
			return
		}
		if criteria.Province == "" {
			m.notice = "select a province first"
			return
		}
		cities := m.controller.Facets().Cities(criteria.Province)
		if len(cities) == 0 {
			m.notice = fmt.Sprintf("no cities listed for %s", criteria.Province)
			return
		}
		m.picker = newOptionPicker("City · "+criteria.Province, cities, criteria.City)

	default:
		return
	}

	m.activeModal = modal
}

func (m *PageModel) handlePickerKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "esc", "q":
		m.activeModal = ModalNone
		return true, nil

	case "up", "k":
		m.picker.move(-1)
		return true, nil

	case "down", "j":
		m.picker.move(1)
		return true, nil

	case " ", "space", "enter":
		modal := m.activeModal
		value := m.picker.value()
		m.activeModal = ModalNone

		if modal == ModalCity {
			m.controller.SetCity(value)
			return true, nil
		}
		return true, m.selectRegion(value)
	}

	return true, nil
}

func (m *PageModel) renderPickerModal() string {
	modalStyle := lipgloss.NewStyle().
		Width(pickerModalWidth).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue).
		Padding(1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBBlue)

	var content strings.Builder
	content.WriteString(titleStyle.Render(m.picker.title))
	content.WriteString("\n\n")

	end := min(m.picker.offset+pickerVisibleLines, len(m.picker.options))
	for i := m.picker.offset; i < end; i++ {
		cursor := " "
		if m.picker.cursor == i {
			cursor = ">"
		}

		label := m.picker.options[i]
		if label == "" {
			label = allOptionLabel
		}

		line := fmt.Sprintf("%s %s", cursor, label)
		if m.picker.cursor == i {
			line = HighlightStyle.Render(line)
		}

		content.WriteString(line)
		content.WriteString("\n")
	}

	if len(m.picker.options) > pickerVisibleLines {
		content.WriteString(HelpStyle.Render(fmt.Sprintf("%d/%d", m.picker.cursor+1, len(m.picker.options))))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(HelpStyle.Render("↑/↓: Navigate | Enter: Select | Esc: Close"))

	return modalStyle.Render(content.String())
}
