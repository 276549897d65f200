// Package pdf reads bulletin PDFs: best-effort text-layer extraction,
// sparse-text detection, and embedded metadata. Total failures surface as
// empty results rather than errors so one unreadable file never unwinds a
// batch.
package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	// DefaultMaxFileSize caps the PDFs the service will open.
	DefaultMaxFileSize = 100 * 1024 * 1024

	// DefaultTextThreshold is the character count across all pages below
	// which a document is considered image-based and flagged for OCR.
	DefaultTextThreshold = 150

	maxTextSize = 10 * 1024 * 1024
)

// Service handles PDF file reading operations.
type Service struct {
	maxFileSize   int64
	textThreshold int
	logger        *slog.Logger
}

func NewService(maxFileSize int64, logger *slog.Logger) *Service {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		maxFileSize:   maxFileSize,
		textThreshold: DefaultTextThreshold,
		logger:        logger,
	}
}

// NeedsOCR reports whether the document's embedded text is too sparse to
// extract from natively. A file that cannot be opened at all also reports
// true; the caller decides what to do with the empty text that follows.
func (s *Service) NeedsOCR(path string) bool {
	f, reader, err := pdf.Open(path)
	if err != nil {
		s.logger.Warn("pdf.precheck.unreadable", "path", path, "err", err)
		return true
	}
	defer f.Close()

	total := 0
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		total += len(s.pageText(reader, pageNum))
		if total >= s.textThreshold {
			return false
		}
	}
	return total < s.textThreshold
}

// Load extracts the document in one pass: OCR pre-check, text, page count.
func (s *Service) Load(path string) Document {
	doc := Document{Path: path}
	doc.OCRRequired = s.NeedsOCR(path)
	doc.Text = s.ExtractText(path)
	if pages, err := s.PageCount(path); err == nil {
		doc.Pages = pages
	}
	return doc
}

// ExtractText returns the document's text layer. Best-effort: on total
// failure it returns an empty string, never an error. Pages that fail to
// decode are skipped so one bad page does not lose the rest.
func (s *Service) ExtractText(path string) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > s.maxFileSize {
		return ""
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		s.logger.Warn("pdf.extract.open_failed", "path", path, "err", err)
		return ""
	}
	defer f.Close()

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		content := s.pageText(reader, pageNum)
		if content == "" {
			continue
		}
		if builder.Len()+len(content) > maxTextSize {
			remaining := maxTextSize - builder.Len()
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}
		builder.WriteString(content)
		builder.WriteString("\n")
	}
	return builder.String()
}

// pageText extracts one page, recovering from parser panics so a
// malformed page reads as empty.
func (s *Service) pageText(reader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}

// Metadata reads the trailer Info dictionary. Missing or unreadable
// metadata yields zero values.
func (s *Service) Metadata(path string) Metadata {
	var meta Metadata

	f, reader, err := pdf.Open(path)
	if err != nil {
		return meta
	}
	defer f.Close()

	defer func() {
		// trailer access can panic on malformed xref tables
		_ = recover()
	}()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return meta
	}
	meta.Author = stringValue(info.Key("Author"))
	meta.CreationDate = stringValue(info.Key("CreationDate"))
	meta.ModDate = stringValue(info.Key("ModDate"))
	return meta
}

func stringValue(v pdf.Value) string {
	if v.Kind() != pdf.String {
		return ""
	}
	return v.Text()
}

// Validate checks that the file is a structurally sound PDF.
func (s *Service) Validate(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}
	return nil
}

// PageCount returns the document's page count.
func (s *Service) PageCount(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count %s: %w", path, err)
	}
	return count, nil
}
