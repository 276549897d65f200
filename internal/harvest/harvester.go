package harvest

import (
	"log/slog"

	"github.com/kbflow/bulletin-harvester/internal/patterns"
	"github.com/kbflow/bulletin-harvester/internal/pdf"
)

// Fields is the per-document result of running every extractor.
type Fields struct {
	FullID        string
	ShortID       string
	Models        string
	Subject       string
	Author        string
	PublishedDate string
	DocType       DocumentType
}

// Config tunes the harvester.
type Config struct {
	MaxSubjectLength int
	DefaultAuthor    string
}

// Harvester runs the extraction pipeline over one document's text in a
// fixed order: identifier, models, date, subject, author, classification.
type Harvester struct {
	normalizer  *Normalizer
	identifiers *IdentifierExtractor
	models      *ModelExtractor
	dates       *DateExtractor
	subjects    *SubjectExtractor
	authors     *AuthorExtractor

	// Enhancer is an optional subject strategy consulted when the
	// pattern-based extraction misses. Never required for correctness.
	Enhancer SubjectStrategy

	logger *slog.Logger
}

func NewHarvester(set *patterns.Set, cfg Config, logger *slog.Logger) *Harvester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Harvester{
		normalizer:  NewNormalizer(set),
		identifiers: NewIdentifierExtractor(set, logger),
		models:      NewModelExtractor(set, logger),
		dates:       NewDateExtractor(set, logger),
		subjects:    NewSubjectExtractor(set, cfg.MaxSubjectLength, logger),
		authors:     NewAuthorExtractor(set, cfg.DefaultAuthor, logger),
		logger:      logger,
	}
}

// Harvest extracts every field from one document. Total: extraction misses
// surface as empty or sentinel values, never as errors.
func (h *Harvester) Harvest(rawText, filename string, meta pdf.Metadata) Fields {
	text := h.normalizer.Normalize(rawText)

	var f Fields
	f.FullID, f.ShortID = h.identifiers.Extract(text, filename)
	f.Models = h.models.Extract(text, filename)
	f.PublishedDate = h.dates.Extract(text, meta)
	f.Subject = h.subjects.Extract(text, f.FullID, f.ShortID, filename, h.Enhancer)
	f.Author = h.authors.Extract(text, meta)
	f.DocType = Classify(text)

	h.logger.Info("harvest.ok",
		"file", filename,
		"full_id", f.FullID,
		"short_id", f.ShortID,
		"doc_type", string(f.DocType),
	)
	return f
}

// Normalize exposes the harvester's text normalizer.
func (h *Harvester) Normalize(text string) string {
	return h.normalizer.Normalize(text)
}
