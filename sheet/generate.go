package sheet

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pb33f/jobific/motor"
	"github.com/xuri/excelize/v2"
)

// GenerateOptions configures synthetic workbook generation
type GenerateOptions struct {
	RowCount         int      // number of company rows
	Seed             int64    // random seed for reproducibility (0 = use time)
	InjectNames      []string // names placed at random rows, for search testing
	MissingAddresses int      // rows written without an address cell
	SheetName        string   // default: Sheet1
}

// DefaultGenerateOptions provides sensible defaults
var DefaultGenerateOptions = GenerateOptions{
	RowCount:  50,
	SheetName: "Sheet1",
}

// InjectedName records where an injected name ended up
type InjectedName struct {
	Name string
	Row  int // 0-based record index
}

// GenerateResult describes a generated workbook
type GenerateResult struct {
	Path          string
	TotalRows     int
	InjectedNames []InjectedName
}

// GenerateInMemory creates company records without writing to disk.
func GenerateInMemory(opts GenerateOptions) ([]motor.Record, []InjectedName) {
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	records := make([]motor.Record, opts.RowCount)
	for i := range records {
		name := randomName(rng)
		address := randomAddress(rng)
		records[i] = motor.Record{
			Name:           name,
			Classification: address,
			Fields: map[string]string{
				motor.FieldName:    name,
				motor.FieldAddress: address,
			},
		}
	}

	if opts.RowCount == 0 {
		return records, nil
	}

	// rows are drawn without replacement: the first MissingAddresses rows of
	// the permutation lose their address, injections take the rows after them
	rows := rng.Perm(opts.RowCount)
	missing := min(max(opts.MissingAddresses, 0), opts.RowCount)
	for _, row := range rows[:missing] {
		records[row].Classification = ""
		delete(records[row].Fields, motor.FieldAddress)
	}

	var injected []InjectedName
	free := rows[missing:]
	for i, name := range opts.InjectNames {
		if i >= len(free) {
			break
		}
		row := free[i]
		records[row].Name = name
		records[row].Fields[motor.FieldName] = name
		injected = append(injected, InjectedName{Name: name, Row: row})
	}

	return records, injected
}

// GenerateToFile writes a workbook with a name/adress header to path.
func GenerateToFile(path string, opts GenerateOptions) (*GenerateResult, error) {
	if opts.SheetName == "" {
		opts.SheetName = DefaultGenerateOptions.SheetName
	}

	records, injected := GenerateInMemory(opts)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := WriteWorkbook(path, opts.SheetName, records); err != nil {
		return nil, err
	}

	return &GenerateResult{
		Path:          path,
		TotalRows:     len(records),
		InjectedNames: injected,
	}, nil
}

// Generate writes a workbook to a temp file
func Generate(opts GenerateOptions) (*GenerateResult, error) {
	tmpFile, err := os.CreateTemp("", "jobific-*.xlsx")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmpFile.Name()
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	result, err := GenerateToFile(path, opts)
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	return result, nil
}

// WriteWorkbook writes records as a name/adress sheet.
func WriteWorkbook(path, sheetName string, records []motor.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := []interface{}{motor.FieldName, motor.FieldAddress}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{records[i].Name}
		if records[i].Classification != "" {
			row = append(row, records[i].Classification)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
