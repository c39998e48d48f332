package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pb33f/jobific/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	pageSize   int
	plain      bool
	startPage  int
	search     string
	Logger     *slog.Logger
	appConfig  *config.Config

	rootCmd = &cobra.Command{
		Use:   "jobific",
		Short: "Browse recommended companies and work24 job listings in the terminal",
		Long: `Jobific is a terminal user interface for two paginated lists: recommended
companies read from a spreadsheet, and live job postings from the work24 open
API. Both lists can be searched by name and narrowed by region.`,
		Example: `  jobific companies company.xlsx
  jobific companies --province 서울 --plain
  jobific jobs --region 부산 -v`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(os.Stderr)
			return loadConfig(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), RenderBanner())
			_ = cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/jobific/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "Records per page (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Print one page as plain text instead of starting the TUI")
	rootCmd.PersistentFlags().IntVar(&startPage, "page", 1, "Page to show first")
	rootCmd.PersistentFlags().StringVar(&search, "search", "", "Initial name search term")

	// will be reconfigured in PersistentPreRunE based on flags
	setupLogger(os.Stderr)
}

// setupLogger configures the global slog logger based on the verbose flag
func setupLogger(w io.Writer) {
	var opts *slog.HandlerOptions

	if verbose {
		opts = &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}
	} else {
		opts = &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}

	handler := slog.NewTextHandler(w, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	if verbose {
		Logger.Debug("verbose logging enabled",
			"level", slog.LevelDebug.String(),
			"pid", os.Getpid())
	}
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	if Logger == nil {
		setupLogger(os.Stderr)
	}
	return Logger
}

// loadConfig builds the effective configuration: defaults, then the YAML
// file, then .env and the environment, then flags.
func loadConfig(cmd *cobra.Command) error {
	config.LoadEnvFiles(".env")

	path := configPath
	required := cmd.Flags().Changed("config")
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			Logger.Debug("no default config location", "error", err)
		}
		path = defaultPath
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = pageSize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appConfig = cfg
	Logger.Debug("configuration loaded",
		"path", path,
		"page_size", cfg.PageSize,
		"workbook", cfg.Companies.Workbook,
		"endpoint", cfg.Jobs.Endpoint,
		"auth_key_set", cfg.Jobs.AuthKey != "")
	return nil
}

var workbookExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// ValidateWorkbook checks that a local workbook exists, is not a directory,
// and carries a spreadsheet extension excelize can open.
func ValidateWorkbook(path string) error {
	if path == "" {
		return fmt.Errorf("workbook path is required")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(workbookExtensions, ext) {
		return fmt.Errorf("unsupported workbook type %q: expected one of %s",
			ext, strings.Join(workbookExtensions, ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("workbook does not exist: %s", path)
		}
		return fmt.Errorf("error accessing workbook: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("provided path is a directory, not a file: %s", path)
	}

	return nil
}
