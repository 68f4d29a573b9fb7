package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// EnvPrefix prefixes environment overrides (COMPARABLES_GROUPING_SIZE=5)
const EnvPrefix = "COMPARABLES"

// Config represents the application configuration
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Grouping GroupingConfig `mapstructure:"grouping"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Output   OutputConfig   `mapstructure:"output"`
}

// InputConfig holds spreadsheet loading settings
type InputConfig struct {
	Sheet        string `mapstructure:"sheet"`         // Sheet to read, empty = first sheet
	MissingValue string `mapstructure:"missing_value"` // Text used for empty cells in the combined field
}

// GroupingConfig holds partitioning settings
type GroupingConfig struct {
	Size int `mapstructure:"size"` // Rows per group
}

// StorageConfig holds reply persistence settings
type StorageConfig struct {
	Backend    string `mapstructure:"backend"`     // "file" or "sqlite"
	Dir        string `mapstructure:"dir"`         // Directory of grupo_{n}.json files
	SQLitePath string `mapstructure:"sqlite_path"` // Database file for the sqlite backend
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir          string `mapstructure:"dir"`           // Output directory
	CombinedName string `mapstructure:"combined_name"` // Combined report file name (without extension)
}

// Load reads the configuration from a file or uses defaults.
// A missing file is not an error. A .env file in the working directory is
// loaded first, and COMPARABLES_* variables override file values.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	// A missing file falls back to defaults
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func isNotFound(err error) bool {
	return os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
		strings.Contains(err.Error(), "cannot find")
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.missing_value", "nan")

	v.SetDefault("grouping.size", 3)

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.dir", "./datos_guardados")
	v.SetDefault("storage.sqlite_path", "")

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.combined_name", "Todos_Grupos_Resultados")
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absStorage, err := filepath.Abs(c.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve storage.dir: %w", err)
	}
	c.Storage.Dir = absStorage

	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = filepath.Join(c.Storage.Dir, "respuestas.db")
	}
	absDB, err := filepath.Abs(c.Storage.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to resolve storage.sqlite_path: %w", err)
	}
	c.Storage.SQLitePath = absDB

	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// GroupReportPath returns the workbook path for one group's report
func (c *Config) GroupReportPath(label string) string {
	return filepath.Join(c.Output.Dir, label+"_Resultados.xlsx")
}

// PromptPath returns the text file path for one group's prompt
func (c *Config) PromptPath(label string) string {
	return filepath.Join(c.Output.Dir, label+"_Prompt.txt")
}

// PromptsDocPath returns the Word document holding every prompt
func (c *Config) PromptsDocPath() string {
	return filepath.Join(c.Output.Dir, "Prompts_Grupos.docx")
}

// CombinedPath returns the combined report path with the given extension
func (c *Config) CombinedPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.CombinedName+ext)
}

// LogPath returns the log file path
func (c *Config) LogPath() string {
	return filepath.Join(c.Output.Dir, "comparables.log")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Grouping.Size < 1 {
		return fmt.Errorf("grouping.size must be at least 1, got %d", c.Grouping.Size)
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir cannot be empty")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path cannot be empty")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.Storage.Backend)
	}

	if c.Output.CombinedName == "" {
		return fmt.Errorf("output.combined_name cannot be empty")
	}

	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Comparables Configuration ===")
	fmt.Printf("Input Sheet:      %q\n", c.Input.Sheet)
	fmt.Printf("Missing Value:    %q\n", c.Input.MissingValue)
	fmt.Printf("Group Size:       %d\n", c.Grouping.Size)
	fmt.Printf("Storage Backend:  %s\n", c.Storage.Backend)
	fmt.Printf("Storage Dir:      %s\n", c.Storage.Dir)
	if c.Storage.Backend == BackendSQLite {
		fmt.Printf("SQLite Path:      %s\n", c.Storage.SQLitePath)
	}
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Combined Report:  %s\n", c.CombinedPath(".xlsx"))
	fmt.Println("=================================")
}
