// Package batch drives a full ingestion run: input discovery, per-file
// extraction, record assembly, and the final export.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kbflow/bulletin-harvester/internal/export"
	"github.com/kbflow/bulletin-harvester/internal/harvest"
	"github.com/kbflow/bulletin-harvester/internal/pdf"
	"github.com/kbflow/bulletin-harvester/internal/record"
)

var (
	// ErrOutputLocked means the output workbook is open in another
	// application and cannot be overwritten.
	ErrOutputLocked = errors.New("output file is locked by another application")
	// ErrNoInput means discovery produced no PDFs to process.
	ErrNoInput = errors.New("no PDF files found in the selected input")
)

// FileState tracks a single file through the run.
type FileState string

const (
	StatePending     FileState = "Pending"
	StateExtracting  FileState = "Extracting"
	StateOCRFallback FileState = "OCR Fallback"
	StateExtracted   FileState = "Extracted"
	StateErrored     FileState = "Errored"
	StateSkipped     FileState = "Skipped"
)

type (
	// ProgressFunc receives completed and total file counts.
	ProgressFunc func(done, total int)
	// StatusFunc receives per-file state transitions.
	StatusFunc func(filename string, state FileState)
	// OCRActiveFunc signals when an OCR-flagged file is being worked on.
	OCRActiveFunc func(active bool)
)

// Options configures a single run.
type Options struct {
	Dir          string
	Files        []string
	OutputPath   string
	TemplatePath string

	Progress  ProgressFunc
	Status    StatusFunc
	OCRActive OCRActiveFunc
}

// Result summarizes a completed run.
type Result struct {
	RunID       string
	OutputPath  string
	Rows        int
	ReviewFiles []string
	FailedCount int
	OCRCount    int
	Elapsed     time.Duration
}

// Orchestrator owns the per-run pipeline.
type Orchestrator struct {
	pdfs      *pdf.Service
	harvester *harvest.Harvester
	assembler *record.Assembler
	exporter  *export.Exporter
	logger    *slog.Logger
}

func NewOrchestrator(pdfs *pdf.Service, h *harvest.Harvester, a *record.Assembler, e *export.Exporter, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		pdfs:      pdfs,
		harvester: h,
		assembler: a,
		exporter:  e,
		logger:    logger,
	}
}

// Run processes every discovered PDF and writes the import workbook. A
// cancelled context stops between files and suppresses the export; records
// already produced are reported in the partial Result alongside ctx's
// error.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	log := o.logger.With("run_id", res.RunID)

	if err := checkOutputWritable(opts.OutputPath); err != nil {
		return res, err
	}

	scratch, err := os.MkdirTemp("", "bulletin-harvester-")
	if err != nil {
		return res, fmt.Errorf("scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	inputs, err := o.gatherInputs(ctx, opts.Dir, opts.Files, scratch)
	if err != nil {
		return res, err
	}
	if len(inputs) == 0 {
		return res, ErrNoInput
	}
	log.Info("batch.start", "files", len(inputs), "output", opts.OutputPath)

	notifyStatus := opts.Status
	if notifyStatus == nil {
		notifyStatus = func(string, FileState) {}
	}
	notifyProgress := opts.Progress
	if notifyProgress == nil {
		notifyProgress = func(int, int) {}
	}
	notifyOCR := opts.OCRActive
	if notifyOCR == nil {
		notifyOCR = func(bool) {}
	}
	for _, path := range inputs {
		notifyStatus(filepath.Base(path), StatePending)
	}

	var rows []record.ExportRow
	for i, path := range inputs {
		if err := ctx.Err(); err != nil {
			for _, remaining := range inputs[i:] {
				notifyStatus(filepath.Base(remaining), StateSkipped)
			}
			log.Warn("batch.cancelled", "done", i, "total", len(inputs))
			res.Rows = len(rows)
			res.Elapsed = time.Since(start)
			return res, err
		}

		rec := o.processOne(path, notifyStatus, notifyOCR)
		switch rec.Status {
		case record.StatusFailed:
			res.FailedCount++
		case record.StatusOCRRequired:
			res.OCRCount++
		}
		if rec.NeedsReview {
			res.ReviewFiles = append(res.ReviewFiles, rec.FileName)
		}
		rows = append(rows, o.assembler.Assemble(rec))
		notifyProgress(i+1, len(inputs))
	}
	res.Rows = len(rows)

	out, err := o.exporter.Export(rows, opts.OutputPath, opts.TemplatePath)
	if err != nil {
		return res, fmt.Errorf("export: %w", err)
	}
	res.OutputPath = out
	res.Elapsed = time.Since(start)
	log.Info("batch.ok",
		"rows", res.Rows,
		"failed", res.FailedCount,
		"review", len(res.ReviewFiles),
		"elapsed_ms", res.Elapsed.Milliseconds(),
	)
	return res, nil
}

// processOne turns a single PDF into a candidate record. A panic inside
// the extraction stack is converted into a failed record so one bad file
// cannot take down the run.
func (o *Orchestrator) processOne(path string, status StatusFunc, ocrActive OCRActiveFunc) (rec record.CandidateRecord) {
	filename := filepath.Base(path)
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("batch.file.panic", "path", path, "panic", r)
			rec = record.Failed(filename, fmt.Sprintf("internal error: %v", r))
			status(filename, StateErrored)
		}
	}()

	status(filename, StateExtracting)

	if err := o.pdfs.Validate(path); err != nil {
		o.logger.Warn("batch.file.invalid", "path", path, "err", err)
		status(filename, StateErrored)
		return record.Failed(filename, err.Error())
	}

	doc := o.pdfs.Load(path)
	if doc.OCRRequired {
		status(filename, StateOCRFallback)
		ocrActive(true)
		defer ocrActive(false)
	}

	fields := o.harvester.Harvest(doc.Text, filename, o.pdfs.Metadata(path))
	rec = record.New(fields, filename, doc.OCRRequired)

	if rec.Status == record.StatusFailed {
		status(filename, StateErrored)
	} else {
		status(filename, StateExtracted)
	}
	return rec
}

// checkOutputWritable probes the output path before any extraction work
// starts. Spreadsheet applications hold the workbook open and leave an
// owner lockfile next to it; both show up here as ErrOutputLocked.
func checkOutputWritable(path string) error {
	if path == "" {
		return nil
	}
	lockfile := filepath.Join(filepath.Dir(path), "~$"+filepath.Base(path))
	if _, err := os.Stat(lockfile); err == nil {
		return fmt.Errorf("%s: %w", path, ErrOutputLocked)
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", path, ErrOutputLocked)
	}
	return f.Close()
}
