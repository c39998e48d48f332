package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pb33f/jobific/motor"
)

// TextRenderer writes each rendered page as plain text. It backs --plain
// and needs no terminal.
type TextRenderer struct {
	w    io.Writer
	kind PageKind
	err  error
}

// NewTextRenderer creates a renderer writing to w
func NewTextRenderer(w io.Writer, kind PageKind) *TextRenderer {
	return &TextRenderer{w: w, kind: kind}
}

// Render implements motor.Renderer. The first write error is kept and later
// renders are skipped.
func (r *TextRenderer) Render(page []motor.Record, state motor.PageState) {
	if r.err != nil {
		return
	}

	var b strings.Builder
	if len(page) == 0 {
		b.WriteString("No matching results\n")
	}

	start := state.StartIndex()
	for i := range page {
		row := formatRow(r.kind, &page[i], start+i+1)
		b.WriteString(row[0])
		b.WriteString(". ")
		b.WriteString(strings.Join(row[1:], " | "))
		b.WriteString("\n")
	}
	b.WriteString(counter.Sprintf("-- page %s (%d results) --\n", state.String(), state.TotalItems))

	_, r.err = io.WriteString(r.w, b.String())
}

// Err returns the first write error
func (r *TextRenderer) Err() error {
	return r.err
}

// RenderCurrent writes the controller's current page once through a text
// renderer, without keeping it registered.
func RenderCurrent(w io.Writer, kind PageKind, c *motor.Controller) error {
	r := NewTextRenderer(w, kind)
	r.Render(c.Page(), c.State())
	if r.err != nil {
		return fmt.Errorf("failed to write page: %w", r.err)
	}
	return nil
}
