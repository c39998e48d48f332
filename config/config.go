package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pb33f/jobific/motor"
	"github.com/pb33f/jobific/work24"
	"gopkg.in/yaml.v3"
)

// Environment variables read after .env files are loaded.
const (
	EnvAuthKey  = "WORK24_AUTH_KEY"
	EnvEndpoint = "WORK24_API_URL"
	EnvWorkbook = "JOBIFIC_WORKBOOK"
	EnvPageSize = "JOBIFIC_PAGE_SIZE"
)

const (
	appDirName     = "jobific"
	configFileName = "config.yaml"
	logFileName    = "jobific.log"
)

// Config is the complete application configuration.
type Config struct {
	PageSize  int             `yaml:"page_size"`
	Companies CompaniesConfig `yaml:"companies"`
	Jobs      JobsConfig      `yaml:"jobs"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CompaniesConfig configures the company workbook page.
type CompaniesConfig struct {
	Workbook      string   `yaml:"workbook"`
	Sheet         string   `yaml:"sheet"`
	NameColumn    string   `yaml:"name_column"`
	AddressColumn string   `yaml:"address_column"`
	ProvinceOrder []string `yaml:"province_order"`
}

// JobsConfig configures the work24 job listing page.
type JobsConfig struct {
	Endpoint          string        `yaml:"endpoint"`
	AuthKey           string        `yaml:"auth_key"`
	Display           int           `yaml:"display"`
	Regions           []string      `yaml:"regions"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout"`
}

// LoggingConfig configures where logs go while the TUI owns the terminal.
type LoggingConfig struct {
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PageSize: motor.DefaultPageSize,
		Companies: CompaniesConfig{
			Workbook:      "company.xlsx",
			NameColumn:    motor.FieldName,
			AddressColumn: motor.FieldAddress,
			ProvinceOrder: append([]string(nil), motor.DefaultProvinceOrder...),
		},
		Jobs: JobsConfig{
			Endpoint:          work24.DefaultEndpoint,
			Display:           work24.DefaultDisplay,
			Regions:           append([]string(nil), motor.DefaultRegions...),
			RequestsPerSecond: 1,
		},
	}
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// DefaultPath returns the path of the per-user config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads path over the defaults. A missing file is an error only when
// required is set (the user named it explicitly).
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvFiles loads .env style files into the process environment. Missing
// files are skipped and variables already set are not overridden.
func LoadEnvFiles(files ...string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvAuthKey); v != "" {
		c.Jobs.AuthKey = v
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Jobs.Endpoint = v
	}
	if v := os.Getenv(EnvWorkbook); v != "" {
		c.Companies.Workbook = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPageSize, err)
		}
		c.PageSize = size
	}
	return nil
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	if err := motor.ValidatePageSize(c.PageSize); err != nil {
		return err
	}
	if c.Jobs.Display < 1 || c.Jobs.Display > work24.MaxDisplay {
		return fmt.Errorf("%w: got %d", work24.ErrInvalidDisplay, c.Jobs.Display)
	}
	if c.Jobs.RequestsPerSecond < 0 {
		return errors.New("requests_per_second cannot be negative")
	}
	if c.Jobs.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	return nil
}

// LogFile returns the configured log file, defaulting to the config directory.
func (c *Config) LogFile() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}
