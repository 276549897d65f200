package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/kbflow/bulletin-harvester/internal/batch"
	"github.com/kbflow/bulletin-harvester/internal/config"
	"github.com/kbflow/bulletin-harvester/internal/export"
	"github.com/kbflow/bulletin-harvester/internal/harvest"
	"github.com/kbflow/bulletin-harvester/internal/patterns"
	"github.com/kbflow/bulletin-harvester/internal/pdf"
	"github.com/kbflow/bulletin-harvester/internal/record"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging installs a JSON logger on stderr so progress output on
// stdout stays machine-free
func setupLogging(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func loadPatterns(cfg *config.Config) (*patterns.Set, error) {
	if cfg.PatternsPath == "" {
		return patterns.DefaultSet(), nil
	}
	return patterns.LoadWithOverrides(cfg.PatternsPath)
}

func run() error {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		return err
	}
	logger := setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}
	if cfg.IsDebug() {
		logger.Debug("config.loaded", "config", cfg.String())
	}

	set, err := loadPatterns(cfg)
	if err != nil {
		return fmt.Errorf("load patterns: %w", err)
	}

	pdfService := pdf.NewService(cfg.MaxFileSize, logger)
	harvester := harvest.NewHarvester(set, harvest.Config{
		MaxSubjectLength: cfg.MaxSubjectLen,
		DefaultAuthor:    cfg.DefaultAuthor,
	}, logger)
	assembler := record.NewAssembler(logger)
	exporter := export.NewExporter(logger)
	orch := batch.NewOrchestrator(pdfService, harvester, assembler, exporter, logger)

	// Ctrl-C stops between files; the partial run is reported, not exported
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalCh
		logger.Warn("run.signal", "signal", sig.String())
		cancel()
	}()

	res, err := orch.Run(ctx, batch.Options{
		Dir:          cfg.InputDir,
		Files:        cfg.InputFiles,
		OutputPath:   cfg.OutputPath,
		TemplatePath: cfg.TemplatePath,
		Progress: func(done, total int) {
			fmt.Printf("\rProcessed %d/%d", done, total)
			if done == total {
				fmt.Println()
			}
		},
		Status: func(filename string, state batch.FileState) {
			logger.Debug("run.file_state", "file", filename, "state", state)
		},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "\nCancelled after %d records; no output written\n", res.Rows)
		}
		return err
	}

	fmt.Printf("Wrote %s: %d rows (%d failed, %d need review, %d flagged for OCR) in %s\n",
		res.OutputPath, res.Rows, res.FailedCount, len(res.ReviewFiles), res.OCRCount, res.Elapsed.Round(10*time.Millisecond))
	for _, f := range res.ReviewFiles {
		fmt.Printf("  review: %s\n", f)
	}
	return nil
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Bulletin Harvester\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
