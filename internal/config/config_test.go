package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OutputPath != DefaultOutput {
		t.Errorf("Expected default output to be %q, got %q", DefaultOutput, cfg.OutputPath)
	}
	if cfg.DefaultAuthor != DefaultAuthor {
		t.Errorf("Expected default author to be %q, got %q", DefaultAuthor, cfg.DefaultAuthor)
	}
	if cfg.MaxSubjectLen != DefaultMaxSubjectLen {
		t.Errorf("Expected default max subject length to be %d, got %d", DefaultMaxSubjectLen, cfg.MaxSubjectLen)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got %q", cfg.LogLevel)
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.pdf")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.InputDir = dir
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid directory input",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name: "valid file input",
			mutate: func(c *Config) {
				c.InputDir = ""
				c.InputFiles = []string{file}
			},
			wantErr: false,
		},
		{
			name:    "no input at all",
			mutate:  func(c *Config) { c.InputDir = "" },
			wantErr: true,
		},
		{
			name:    "dir and files are mutually exclusive",
			mutate:  func(c *Config) { c.InputFiles = []string{file} },
			wantErr: true,
		},
		{
			name:    "missing input directory",
			mutate:  func(c *Config) { c.InputDir = filepath.Join(dir, "nope") },
			wantErr: true,
		},
		{
			name: "missing input file",
			mutate: func(c *Config) {
				c.InputDir = ""
				c.InputFiles = []string{filepath.Join(dir, "nope.pdf")}
			},
			wantErr: true,
		},
		{
			name:    "empty output path",
			mutate:  func(c *Config) { c.OutputPath = "" },
			wantErr: true,
		},
		{
			name:    "missing template",
			mutate:  func(c *Config) { c.TemplatePath = filepath.Join(dir, "nope.xlsx") },
			wantErr: true,
		},
		{
			name:    "zero subject length",
			mutate:  func(c *Config) { c.MaxSubjectLen = 0 },
			wantErr: true,
		},
		{
			name:    "negative max file size",
			mutate:  func(c *Config) { c.MaxFileSize = -1 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IsDebug() {
		t.Error("default config should not be in debug mode")
	}
	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("debug log level should report debug mode")
	}
}
