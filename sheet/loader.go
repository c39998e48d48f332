package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/pb33f/jobific/motor"
	"github.com/xuri/excelize/v2"
)

// Default column headers of the bundled company workbook. The address header
// is spelled "adress" in the source data.
const (
	DefaultNameColumn           = motor.FieldName
	DefaultClassificationColumn = motor.FieldAddress
)

var (
	ErrNoSheets      = errors.New("workbook has no sheets")
	ErrMissingHeader = errors.New("sheet has no header row")
	ErrNotFound      = errors.New("workbook not found")
)

// Options configures a workbook loader.
type Options struct {
	// Path is a local file path or an http(s) URL
	Path string

	// Sheet selects a sheet by name; empty selects the first sheet
	Sheet string

	NameColumn           string
	ClassificationColumn string

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Loader reads company records from an .xlsx workbook. Each row after the
// header becomes one record keyed by header names.
type Loader struct {
	opts     Options
	logger   *slog.Logger
	interner *motor.Interner
}

// NewLoader creates a workbook loader with defaults applied
func NewLoader(opts Options) *Loader {
	if opts.NameColumn == "" {
		opts.NameColumn = DefaultNameColumn
	}
	if opts.ClassificationColumn == "" {
		opts.ClassificationColumn = DefaultClassificationColumn
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		opts:     opts,
		logger:   logger,
		interner: motor.NewInterner(),
	}
}

// Name returns the workbook location
func (l *Loader) Name() string {
	return l.opts.Path
}

// Load opens the workbook and decodes the selected sheet.
func (l *Loader) Load(ctx context.Context) ([]motor.Record, error) {
	f, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.logger.Debug("error closing workbook", "error", closeErr)
		}
	}()

	return l.decode(ctx, f)
}

func (l *Loader) open(ctx context.Context) (*excelize.File, error) {
	if IsRemote(l.opts.Path) {
		return l.openRemote(ctx)
	}

	f, err := excelize.OpenFile(l.opts.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, l.opts.Path)
		}
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return f, nil
}

func (l *Loader) openRemote(ctx context.Context) (*excelize.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.opts.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := l.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workbook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s returned %s", ErrNotFound, l.opts.Path, resp.Status)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	return f, nil
}

func (l *Loader) decode(ctx context.Context, f *excelize.File) ([]motor.Record, error) {
	sheetName := l.opts.Sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheets
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingHeader, sheetName)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]motor.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		fields := rowFields(header, row)
		if len(fields) == 0 {
			continue
		}

		records = append(records, motor.Record{
			Name:           fields[l.opts.NameColumn],
			Classification: l.interner.Intern(strings.TrimSpace(fields[l.opts.ClassificationColumn])),
			Fields:         fields,
		})
	}

	l.logger.Debug("workbook decoded",
		"sheet", sheetName,
		"rows", len(rows)-1,
		"records", len(records),
		"distinct_addresses", l.interner.Len())

	return records, nil
}

// rowFields maps header names to non-empty cell values. Blank rows yield an
// empty map and are skipped by the caller.
func rowFields(header, row []string) map[string]string {
	fields := make(map[string]string, len(header))
	for i, cell := range row {
		if i >= len(header) || header[i] == "" || cell == "" {
			continue
		}
		fields[header[i]] = cell
	}
	return fields
}

// IsRemote reports whether path is an http(s) URL rather than a file
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
