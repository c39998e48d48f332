package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/jobific/motor"
	"github.com/pb33f/jobific/tui"
)

// runPage either prints the requested page as text or opens the TUI.
func runPage(ctx context.Context, out io.Writer, opts tui.PageOptions) error {
	if plain {
		return printPage(ctx, out, opts.Kind, opts.Controller)
	}
	return LaunchTUI(ctx, opts)
}

// printPage loads once and writes the requested page without a terminal.
func printPage(ctx context.Context, out io.Writer, kind tui.PageKind, controller *motor.Controller) error {
	if err := controller.Load(ctx); err != nil {
		return err
	}
	if startPage > motor.FirstPage && !controller.ChangePage(startPage) {
		return fmt.Errorf("page %d is out of range (1-%d)", startPage, controller.State().TotalPages)
	}
	return tui.RenderCurrent(out, kind, controller)
}

// pageLogging redirects logs for an interactive page and returns the restore
// func. It must run before the page's loader and controller are built. Plain
// output keeps logging on stderr.
func pageLogging() func() {
	if plain {
		return func() {}
	}
	return redirectLogs()
}

// LaunchTUI runs a page in the alternate screen. Callers redirect logs with
// pageLogging first, since the TUI owns the terminal.
func LaunchTUI(ctx context.Context, opts tui.PageOptions) error {
	opts.Context = ctx
	opts.InitialPage = startPage
	opts.Logger = Logger

	model, err := tui.NewPageModel(opts)
	if err != nil {
		return fmt.Errorf("failed to create TUI model: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if m, ok := finalModel.(*tui.PageModel); ok && m.Err() != nil {
		Logger.Debug("TUI closed after a load error", "error", m.Err())
	}

	return nil
}

// redirectLogs points the global logger at the configured log file and
// returns a func restoring stderr logging. If the file cannot be opened
// logs are discarded.
func redirectLogs() func() {
	var w io.Writer = io.Discard
	var file *os.File

	if path, err := appConfig.LogFile(); err == nil {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			file, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				w = file
			}
		}
	}

	setupLogger(w)

	return func() {
		setupLogger(os.Stderr)
		if file != nil {
			_ = file.Close()
		}
	}
}
