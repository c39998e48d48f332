package cmd

import (
	"fmt"

	"github.com/pb33f/jobific/motor"
	"github.com/pb33f/jobific/sheet"
	"github.com/pb33f/jobific/tui"
	"github.com/spf13/cobra"
)

var (
	companiesProvince string
	companiesCity     string
	companiesSheet    string
)

var companiesCmd = &cobra.Command{
	Use:   "companies [workbook]",
	Short: "Browse recommended companies from a spreadsheet",
	Long: `Browse recommended companies read from the first sheet of an .xlsx workbook.
The header row names the columns; "name" and "adress" are used by default.
The workbook may also be an http(s) URL.`,
	Example: `  jobific companies
  jobific companies company.xlsx --province 서울 --city 강남구
  jobific companies https://example.com/company.xlsx --plain --page 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)

	companiesCmd.Flags().StringVar(&companiesProvince, "province", "", "Initial province filter")
	companiesCmd.Flags().StringVar(&companiesCity, "city", "", "Initial city filter (requires --province)")
	companiesCmd.Flags().StringVar(&companiesSheet, "sheet", "", "Sheet name (default: first sheet)")
}

func runCompanies(cmd *cobra.Command, args []string) error {
	cfg := appConfig.Companies

	path := cfg.Workbook
	if len(args) == 1 {
		path = args[0]
	}
	if !sheet.IsRemote(path) {
		if err := ValidateWorkbook(path); err != nil {
			return fmt.Errorf("invalid workbook: %w", err)
		}
	}
	if companiesCity != "" && companiesProvince == "" {
		return fmt.Errorf("--city requires --province")
	}

	sheetName := cfg.Sheet
	if companiesSheet != "" {
		sheetName = companiesSheet
	}

	// components keep the logger they are built with
	defer pageLogging()()

	loader := sheet.NewLoader(sheet.Options{
		Path:                 path,
		Sheet:                sheetName,
		NameColumn:           cfg.NameColumn,
		ClassificationColumn: cfg.AddressColumn,
		Logger:               Logger,
	})

	controller := motor.NewController(loader, nil, motor.ControllerOptions{
		PageSize:              appConfig.PageSize,
		ProvinceOrder:         cfg.ProvinceOrder,
		RequireClassification: true,
		Logger:                Logger,
	})
	controller.SetCriteria(motor.Criteria{
		Search:                search,
		Province:              companiesProvince,
		City:                  companiesCity,
		RequireClassification: true,
	})

	return runPage(cmd.Context(), cmd.OutOrStdout(), tui.PageOptions{
		Kind:       tui.KindCompanies,
		Controller: controller,
	})
}
