package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultOutput        = "kb_import.xlsx"
	DefaultAuthor        = "Knowledge Import"
	DefaultMaxSubjectLen = 250
	DefaultLogLevel      = "info"
	DefaultMaxFileSize   = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for an ingestion run
type Config struct {
	// Input selection: a directory of PDFs/archives, or explicit files
	InputDir   string
	InputFiles []string

	// Output configuration
	OutputPath   string
	TemplatePath string

	// Extraction configuration
	PatternsPath  string
	DefaultAuthor string
	MaxSubjectLen int

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OutputPath:    DefaultOutput,
		DefaultAuthor: DefaultAuthor,
		MaxSubjectLen: DefaultMaxSubjectLen,
		Version:       "1.0.0",
		LogLevel:      DefaultLogLevel,
		MaxFileSize:   DefaultMaxFileSize,
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

	// Expand paths so log lines and errors show where we actually looked
	if cfg.InputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDir); err == nil {
			cfg.InputDir = expandedPath
		}
	}
	if expandedPath, err := filepath.Abs(cfg.OutputPath); err == nil {
		cfg.OutputPath = expandedPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("BULLETIN")
	viper.AutomaticEnv()

	viper.SetDefault("dir", cfg.InputDir)
	viper.SetDefault("files", cfg.InputFiles)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("template", cfg.TemplatePath)
	viper.SetDefault("patterns", cfg.PatternsPath)
	viper.SetDefault("author", cfg.DefaultAuthor)
	viper.SetDefault("max-subject-len", cfg.MaxSubjectLen)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("dir", cfg.InputDir, "Directory of PDFs and zip archives to ingest")
	pflag.StringSlice("files", cfg.InputFiles, "Explicit PDF or zip files to ingest")
	pflag.String("out", cfg.OutputPath, "Output workbook path")
	pflag.String("template", cfg.TemplatePath, "Workbook whose header row defines the output columns")
	pflag.String("patterns", cfg.PatternsPath, "JSON file with extraction pattern overrides")
	pflag.String("author", cfg.DefaultAuthor, "Author used when none is found in a document")
	pflag.Int("max-subject-len", cfg.MaxSubjectLen, "Maximum subject length before truncation")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{"dir", "files", "out", "template", "patterns", "author", "max-subject-len", "loglevel", "maxfilesize"} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nBulletin Harvester - extract bibliographic fields from service bulletin PDFs\n")
		fmt.Fprintf(os.Stderr, "into a knowledge-base import workbook\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/bulletins --out=import.xlsx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --files=a.pdf,b.zip --template=kb_template.xlsx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  BULLETIN_DIR              Input directory\n")
		fmt.Fprintf(os.Stderr, "  BULLETIN_OUT              Output workbook path\n")
		fmt.Fprintf(os.Stderr, "  BULLETIN_TEMPLATE         Column template workbook\n")
		fmt.Fprintf(os.Stderr, "  BULLETIN_PATTERNS         Pattern override file\n")
		fmt.Fprintf(os.Stderr, "  BULLETIN_AUTHOR           Fallback author\n")
		fmt.Fprintf(os.Stderr, "  BULLETIN_LOGLEVEL         Log level\n")
		fmt.Fprintf(os.Stderr, "  BULLETIN_MAXFILESIZE      Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.InputDir = viper.GetString("dir")
	cfg.InputFiles = viper.GetStringSlice("files")
	cfg.OutputPath = viper.GetString("out")
	cfg.TemplatePath = viper.GetString("template")
	cfg.PatternsPath = viper.GetString("patterns")
	cfg.DefaultAuthor = viper.GetString("author")
	cfg.MaxSubjectLen = viper.GetInt("max-subject-len")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputDir == "" && len(c.InputFiles) == 0 {
		return errors.New("either --dir or --files must be given")
	}
	if c.InputDir != "" && len(c.InputFiles) > 0 {
		return errors.New("--dir and --files are mutually exclusive")
	}

	if c.InputDir != "" {
		info, err := os.Stat(c.InputDir)
		if err != nil {
			return fmt.Errorf("cannot access input directory %s: %w", c.InputDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", c.InputDir)
		}
	}
	for _, f := range c.InputFiles {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("cannot access input file %s: %w", f, err)
		}
	}

	if c.OutputPath == "" {
		return errors.New("output path cannot be empty")
	}
	if c.TemplatePath != "" {
		if _, err := os.Stat(c.TemplatePath); err != nil {
			return fmt.Errorf("cannot access template %s: %w", c.TemplatePath, err)
		}
	}

	if c.MaxSubjectLen <= 0 {
		return errors.New("maximum subject length must be positive")
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
	return fmt.Sprintf("Config{InputDir: %s, Files: %d, Output: %s, Template: %s, LogLevel: %s}",
		c.InputDir, len(c.InputFiles), c.OutputPath, c.TemplatePath, c.LogLevel)
}
