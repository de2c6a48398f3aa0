package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultOutputFile  = "out.csv"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB
)

// Config holds all configuration for the document extractor
type Config struct {
	// Input configuration
	DataDir     string
	InputIsList bool // DataDir is a file listing one document path per line

	// Output configuration
	OutputFile string
	ErrLogFile string // diagnostics for skipped documents; empty means stderr

	// Extraction configuration
	TermsFile   string // optional YAML term-set override
	MaxFileSize int64  // maximum docx file size in bytes
	Workers     int

	// Application configuration
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		DataDir:     currentDir,
		OutputFile:  DefaultOutputFile,
		MaxFileSize: DefaultMaxFileSize,
		Workers:     runtime.NumCPU(),
		Version:     "1.0.0",
		LogLevel:    DefaultLogLevel,
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
	if cfg.DataDir != "" {
		if expandedPath, err := filepath.Abs(cfg.DataDir); err == nil {
			cfg.DataDir = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("DOC_EXTRACT")
	viper.AutomaticEnv()

	viper.SetDefault("dir", cfg.DataDir)
	viper.SetDefault("list", cfg.InputIsList)
	viper.SetDefault("out", cfg.OutputFile)
	viper.SetDefault("errlog", cfg.ErrLogFile)
	viper.SetDefault("terms", cfg.TermsFile)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("dir", cfg.DataDir, "Directory containing docx files (scanned recursively)")
	pflag.Bool("list", cfg.InputIsList, "Treat the --dir path as a file with one document path per line")
	pflag.String("out", cfg.OutputFile, "CSV output file path")
	pflag.String("errlog", cfg.ErrLogFile, "File receiving skipped-document diagnostics (default stderr)")
	pflag.String("terms", cfg.TermsFile, "YAML file overriding the built-in header/section terms")
	pflag.Int("workers", cfg.Workers, "Number of documents processed concurrently")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum docx file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("list", pflag.Lookup("list"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("errlog", pflag.Lookup("errlog"))
	_ = viper.BindPFlag("terms", pflag.Lookup("terms"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ndoc-extract - Extracts labeled fields and sections from docx files into a CSV\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=./reports --out=reports.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=paths.txt --list --out=reports.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=./reports --terms=terms.yaml --workers=4\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  DOC_EXTRACT_DIR          Input directory or list file\n")
		fmt.Fprintf(os.Stderr, "  DOC_EXTRACT_OUT          CSV output path\n")
		fmt.Fprintf(os.Stderr, "  DOC_EXTRACT_ERRLOG       Diagnostics file\n")
		fmt.Fprintf(os.Stderr, "  DOC_EXTRACT_TERMS        Term-set override file\n")
		fmt.Fprintf(os.Stderr, "  DOC_EXTRACT_WORKERS      Worker count\n")
		fmt.Fprintf(os.Stderr, "  DOC_EXTRACT_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  DOC_EXTRACT_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.DataDir = viper.GetString("dir")
	cfg.InputIsList = viper.GetBool("list")
	cfg.OutputFile = viper.GetString("out")
	cfg.ErrLogFile = viper.GetString("errlog")
	cfg.TermsFile = viper.GetString("terms")
	cfg.Workers = viper.GetInt("workers")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("input directory cannot be empty")
	}

	info, err := os.Stat(c.DataDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("input path does not exist: %s", c.DataDir)
	}
	if err != nil {
		return fmt.Errorf("cannot access input path %s: %w", c.DataDir, err)
	}
	if c.InputIsList && info.IsDir() {
		return fmt.Errorf("--list given but %s is a directory", c.DataDir)
	}
	if !c.InputIsList && !info.IsDir() {
		return fmt.Errorf("input path is not a directory: %s (use --list for a path list file)", c.DataDir)
	}

	if c.OutputFile == "" {
		return errors.New("output file cannot be empty")
	}

	if c.Workers < 1 {
		return errors.New("worker count must be positive")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
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

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{DataDir: %s, InputIsList: %t, OutputFile: %s, TermsFile: %s, Workers: %d, LogLevel: %s, MaxFileSize: %d}",
		c.DataDir, c.InputIsList, c.OutputFile, c.TermsFile, c.Workers, c.LogLevel, c.MaxFileSize)
}
