package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/v2/table"
	"golang.org/x/text/cases"
)

// selectedLineMarker is the ANSI prefix of the table's selected style.
const selectedLineMarker = "\x1b[1;38;5;201;48;2;42;26;42m"

// pre-rendered placeholder strings to avoid repeated style.Render() calls
var renderedPlaceholders map[string]string

func init() {
	renderedPlaceholders = make(map[string]string, len(placeholders))
	for _, p := range placeholders {
		renderedPlaceholders[p] = StylePlaceholder.Render(p)
	}
}

// ColorizeTableOutput post-processes rendered table output: search matches
// are highlighted and placeholders faded. The header and the selected row
// are left alone so the selection background survives.
func ColorizeTableOutput(tableView string, cursor int, rows []table.Row, term string) string {
	lines := strings.Split(tableView, "\n")

	// the table's background escape is not always present once scrolled
	var selectedIdentifier string
	if cursor >= 0 && cursor < len(rows) && len(rows[cursor]) >= 2 {
		selectedIdentifier = rows[cursor][1]
	}

	term = strings.TrimSpace(term)

	var result strings.Builder
	result.Grow(len(tableView) + len(lines)*40)

	for i, line := range lines {
		isSelectedLine := strings.Contains(line, selectedLineMarker) ||
			(selectedIdentifier != "" && strings.Contains(line, selectedIdentifier))

		if i >= 1 && !isSelectedLine {
			line = highlightMatches(line, term)
			line = fadePlaceholders(line)
		}

		result.WriteString(line)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

func fadePlaceholders(line string) string {
	for _, p := range placeholders {
		if strings.Contains(line, p) {
			line = strings.ReplaceAll(line, p, renderedPlaceholders[p])
		}
	}
	return line
}

// folder folds the same way the name search does, so highlighted spans are
// exactly the spans that matched.
var folder = cases.Fold()

// highlightMatches styles every case-folded occurrence of term.
func highlightMatches(line, term string) string {
	if term == "" {
		return line
	}

	needle := folder.String(term)
	if needle == "" {
		return line
	}
	haystack, starts, ends := foldWithOffsets(line)

	var b strings.Builder
	last, pos := 0, 0
	for {
		idx := strings.Index(haystack[pos:], needle)
		if idx < 0 {
			break
		}
		fs := pos + idx
		fe := fs + len(needle)
		start, end := starts[fs], ends[fe-1]
		pos = fe
		if start < last {
			start = last
		}
		if start >= end {
			continue
		}
		b.WriteString(line[last:start])
		b.WriteString(StyleSearchMatch.Render(line[start:end]))
		last = end
	}
	if last == 0 {
		return line
	}
	b.WriteString(line[last:])
	return b.String()
}

// foldWithOffsets folds s rune by rune. For every byte of the folded string,
// starts and ends hold the byte span in s of the rune that produced it.
func foldWithOffsets(s string) (string, []int, []int) {
	var b strings.Builder
	b.Grow(len(s))
	starts := make([]int, 0, len(s))
	ends := make([]int, 0, len(s))

	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		f := folder.String(s[i : i+size])
		b.WriteString(f)
		for range len(f) {
			starts = append(starts, i)
			ends = append(ends, i+size)
		}
		i += size
	}
	return b.String(), starts, ends
}
