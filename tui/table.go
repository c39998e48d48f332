package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/pb33f/jobific/motor"
)

// columnSpec is a column title plus its share of the flexible width.
type columnSpec struct {
	title string
	share int
}

var (
	companyColumns = []columnSpec{
		{"Company", 35},
		{"Address", 65},
	}
	jobColumns = []columnSpec{
		{"Title", 34},
		{"Company", 20},
		{"Region", 18},
		{"Salary", 16},
		{"Type", 12},
	}
)

func columnSpecs(kind PageKind) []columnSpec {
	if kind == KindJobs {
		return jobColumns
	}
	return companyColumns
}

// buildColumns sizes the columns for a terminal width. The number column is
// fixed; the remaining width is split by share.
func buildColumns(kind PageKind, width int) []table.Column {
	specs := columnSpecs(kind)
	columns := make([]table.Column, 0, len(specs)+1)
	columns = append(columns, table.Column{Title: "No.", Width: numberColumnWidth})

	available := width - numberColumnWidth - borderPadding - 2*len(specs)
	for _, cs := range specs {
		w := available * cs.share / 100
		if w < minFlexColumnWidth {
			w = minFlexColumnWidth
		}
		columns = append(columns, table.Column{Title: cs.title, Width: w})
	}
	return columns
}

// buildRows numbers the page records from the page's position in the view.
func buildRows(kind PageKind, page []motor.Record, state motor.PageState, columns []table.Column) []table.Row {
	rows := make([]table.Row, 0, len(page))
	start := state.StartIndex()
	for i := range page {
		row := formatRow(kind, &page[i], start+i+1)
		for c := range row {
			if c < len(columns) {
				row[c] = truncateCell(row[c], columns[c].Width)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// formatRow renders one record as table cells, substituting placeholders
// for blank fields.
func formatRow(kind PageKind, record *motor.Record, number int) table.Row {
	n := strconv.Itoa(number)
	if kind == KindJobs {
		return table.Row{
			n,
			orFallback(record.Field(motor.FieldTitle), fallbackTitle),
			orFallback(record.Field(motor.FieldCompany), fallbackCompany),
			orFallback(record.Field(motor.FieldRegion), fallbackRegion),
			orFallback(record.Field(motor.FieldSalary), fallbackSalary),
			orFallback(record.Field(motor.FieldEmploymentType), fallbackEmploymentType),
		}
	}
	return table.Row{
		n,
		orFallback(record.Name, fallbackName),
		orFallback(record.Classification, fallbackAddress),
	}
}

// detailLine is the one-line summary shown when a row is selected.
func detailLine(kind PageKind, record *motor.Record) string {
	if kind == KindJobs {
		if url := record.Field(motor.FieldDetailURL); url != "" {
			return url
		}
		return orFallback(record.Field(motor.FieldTitle), fallbackTitle)
	}
	return orFallback(record.Name, fallbackName) + " · " + orFallback(record.Classification, fallbackAddress)
}

func orFallback(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

var placeholders = []string{
	fallbackTitle,
	fallbackCompany,
	fallbackRegion,
	fallbackSalary,
	fallbackEmploymentType,
	fallbackName,
	fallbackAddress,
}

// truncateCell cuts s to a display width, counting wide Hangul cells as two.
func truncateCell(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
