package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agripipe/tablemend/internal/tabular"
)

const (
	// Default values
	DefaultLogLevel = "info"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all process-level configuration for the tablemend batch tool.
// Heuristic thresholds live in tabular.Config; the overrides kept here exist
// so operators can retune the filter without rebuilding.
type Config struct {
	// I/O configuration
	InputDir  string
	OutputDir string

	// Processing configuration
	Workers int

	// Application configuration
	Version  string
	LogLevel string

	// Heuristic overrides; zero values mean "keep the default"
	GroupKeyMarker  string
	TargetNames     []string
	CompetingNames  []string
	LookbackRows    int
	MaxCellLength   int
	MinDigitDensity float64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		InputDir:  currentDir,
		OutputDir: filepath.Join(currentDir, "tables"),
		Workers:   runtime.NumCPU(),
		Version:   "1.0.0",
		LogLevel:  DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if expanded, err := filepath.Abs(cfg.InputDir); err == nil {
		cfg.InputDir = expanded
	}
	if expanded, err := filepath.Abs(cfg.OutputDir); err == nil {
		cfg.OutputDir = expanded
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("TABLEMEND")
	viper.AutomaticEnv()

	viper.SetDefault("in", cfg.InputDir)
	viper.SetDefault("out", cfg.OutputDir)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("marker", cfg.GroupKeyMarker)
	viper.SetDefault("target", cfg.TargetNames)
	viper.SetDefault("competing", cfg.CompetingNames)
	viper.SetDefault("lookback", cfg.LookbackRows)
	viper.SetDefault("maxcelllength", cfg.MaxCellLength)
	viper.SetDefault("mindigitdensity", cfg.MinDigitDensity)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("in", cfg.InputDir, "Directory containing fragment documents (*.json)")
	pflag.String("out", cfg.OutputDir, "Directory to write reconstructed tables into")
	pflag.Int("workers", cfg.Workers, "Number of documents processed concurrently")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.String("marker", cfg.GroupKeyMarker, "Grouping-key marker overriding the default (commodity)")
	pflag.StringSlice("target", cfg.TargetNames, "Target category names overriding the default (rice)")
	pflag.StringSlice("competing", cfg.CompetingNames, "Competing category names overriding the default (corn,wheat)")
	pflag.Int("lookback", cfg.LookbackRows, "Rows scanned backward for a title marker (0 = default)")
	pflag.Int("maxcelllength", cfg.MaxCellLength, "Longest cell tolerated in the early columns (0 = default)")
	pflag.Float64("mindigitdensity", cfg.MinDigitDensity, "Minimum digit density for a valid table (0 = default)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("in", pflag.Lookup("in"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("marker", pflag.Lookup("marker"))
	_ = viper.BindPFlag("target", pflag.Lookup("target"))
	_ = viper.BindPFlag("competing", pflag.Lookup("competing"))
	_ = viper.BindPFlag("lookback", pflag.Lookup("lookback"))
	_ = viper.BindPFlag("maxcelllength", pflag.Lookup("maxcelllength"))
	_ = viper.BindPFlag("mindigitdensity", pflag.Lookup("mindigitdensity"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ntablemend - reconstructs and filters page-fragmented tables\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --in=./fragments --out=./tables\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --in=./fragments --target=rice --competing=corn,wheat\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TABLEMEND_IN               Input directory\n")
		fmt.Fprintf(os.Stderr, "  TABLEMEND_OUT              Output directory\n")
		fmt.Fprintf(os.Stderr, "  TABLEMEND_WORKERS          Concurrent documents\n")
		fmt.Fprintf(os.Stderr, "  TABLEMEND_LOGLEVEL         Log level\n")
		fmt.Fprintf(os.Stderr, "  TABLEMEND_MARKER           Grouping-key marker\n")
		fmt.Fprintf(os.Stderr, "  TABLEMEND_TARGET           Target category names\n")
		fmt.Fprintf(os.Stderr, "  TABLEMEND_COMPETING        Competing category names\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.InputDir = viper.GetString("in")
	cfg.OutputDir = viper.GetString("out")
	cfg.Workers = viper.GetInt("workers")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.GroupKeyMarker = viper.GetString("marker")
	cfg.TargetNames = viper.GetStringSlice("target")
	cfg.CompetingNames = viper.GetStringSlice("competing")
	cfg.LookbackRows = viper.GetInt("lookback")
	cfg.MaxCellLength = viper.GetInt("maxcelllength")
	cfg.MinDigitDensity = viper.GetFloat64("mindigitdensity")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.New("input directory cannot be empty")
	}
	if info, err := os.Stat(c.InputDir); err != nil {
		return fmt.Errorf("cannot access input directory %s: %w", c.InputDir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", c.InputDir)
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}
	if _, err := os.Stat(c.OutputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.OutputDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", c.OutputDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access output directory %s: %w", c.OutputDir, err)
	}

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	if c.LookbackRows < 0 {
		return errors.New("lookback must not be negative")
	}
	if c.MaxCellLength < 0 {
		return errors.New("maximum cell length must not be negative")
	}
	if c.MinDigitDensity < 0 || c.MinDigitDensity > 1 {
		return errors.New("minimum digit density must be between 0 and 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// HeuristicConfig materializes the tabular configuration, applying any
// operator overrides on top of the built-in defaults.
func (c *Config) HeuristicConfig() tabular.Config {
	cfg := tabular.DefaultConfig()
	if c.GroupKeyMarker != "" {
		cfg.GroupKeyMarker = c.GroupKeyMarker
	}
	if len(c.TargetNames) > 0 {
		cfg.TargetNames = c.TargetNames
	}
	if len(c.CompetingNames) > 0 {
		cfg.CompetingNames = c.CompetingNames
	}
	if c.LookbackRows > 0 {
		cfg.LookbackRows = c.LookbackRows
	}
	if c.MaxCellLength > 0 {
		cfg.MaxCellLength = c.MaxCellLength
	}
	if c.MinDigitDensity > 0 {
		cfg.MinDigitDensity = c.MinDigitDensity
	}
	return cfg
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{InputDir: %s, OutputDir: %s, Workers: %d, LogLevel: %s}",
		c.InputDir, c.OutputDir, c.Workers, c.LogLevel)
}
