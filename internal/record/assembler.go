package record

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kbflow/bulletin-harvester/internal/harvest"
)

// validityYears is the fixed offset between a bulletin's publish date and
// the end of its validity in the knowledge base.
const validityYears = 10

// ExportRow is the flattened, column-mapped form of a finalized record
// plus its derived presentation fields. Owned by the exporter once
// produced.
type ExportRow struct {
	FileName         string
	Author           string
	ArticleType      string
	Description      string
	Published        string
	ShortDescription string
	Meta             string
	MetaDescription  string
	Models           string
	ValidTo          string
	NeedsReview      bool
	Status           ProcessingStatus
}

// Headers returns the canonical column set, in output order, for exports
// without a template.
func Headers() []string {
	return []string{
		"Active", "Article type", "Author", "Category(category)",
		"Confidence", "Description", "Disable commenting",
		"Disable suggesting", "Display attachments", "Flagged",
		"Governance", "Category(kb_category)", "Knowledge base", "Meta",
		"Meta Description", "Published", "Short description", "Topic",
		"models", "Valid to", "file_name", "needs_review",
		"processing_status",
	}
}

// Values maps column headers to this row's cell values. Headers not in
// the map render as empty cells.
func (r ExportRow) Values() map[string]string {
	review := "FALSE"
	if r.NeedsReview {
		review = "TRUE"
	}
	return map[string]string{
		"Active":                "TRUE",
		"Article type":          r.ArticleType,
		"Author":                r.Author,
		"Category(category)":    "Dealer",
		"Confidence":            "Validated",
		"Description":           r.Description,
		"Disable commenting":    "FALSE",
		"Disable suggesting":    "FALSE",
		"Display attachments":   "FALSE",
		"Flagged":               "FALSE",
		"Governance":            "Compliance Based",
		"Category(kb_category)": "General Info",
		"Knowledge base":        "Tech QA",
		"Meta":                  r.Meta,
		"Meta Description":      r.MetaDescription,
		"Published":             r.Published,
		"Short description":     r.ShortDescription,
		"Topic":                 "General",
		"models":                r.Models,
		"Valid to":              r.ValidTo,
		"file_name":             r.FileName,
		"needs_review":          review,
		"processing_status":     string(r.Status),
	}
}

// Assembler finalizes candidate records into export rows.
type Assembler struct {
	// Now is injectable for tests; defaults to time.Now.
	Now    func() time.Time
	logger *slog.Logger
}

func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{Now: time.Now, logger: logger}
}

// Assemble flattens a finalized record, computing the derived
// presentation fields: short description, meta strings, and the validity
// end date (publish date plus a fixed offset, from today when the
// publish date is unknown).
func (a *Assembler) Assemble(r CandidateRecord) ExportRow {
	if r.NeedsReview && r.Status != StatusFailed && r.Status != StatusOCRRequired {
		a.logger.Warn("record.review_flagged", "file", r.FileName)
	}

	row := ExportRow{
		FileName:    r.FileName,
		Author:      r.Author,
		ArticleType: string(r.DocType),
		Description: r.FileName,
		Published:   r.PublishedDate,
		Models:      r.Models,
		NeedsReview: r.NeedsReview,
		Status:      r.Status,
	}
	if row.Author == "" {
		row.Author = harvest.DefaultAuthor
	}

	row.Meta = row.Models
	row.MetaDescription = "QA"
	if r.ShortID != "" {
		row.MetaDescription = "QA, " + r.ShortID
	}
	row.ShortDescription = shortDescription(r)
	row.ValidTo = a.validTo(r.PublishedDate)
	return row
}

func shortDescription(r CandidateRecord) string {
	dateStr := ""
	if r.PublishedDate != "" {
		dateStr = "<" + r.PublishedDate + ">"
	}
	if r.FullID == "" && dateStr == "" && (r.Subject == "" || r.Subject == harvest.NoSubjectSentinel) {
		return r.FileName
	}
	return fmt.Sprintf("%s, %s, %s", r.FullID, dateStr, r.Subject)
}

func (a *Assembler) validTo(published string) string {
	base := a.Now()
	if published != "" {
		if t, err := time.Parse("2006-01-02", published); err == nil {
			base = t
		}
	}
	return base.AddDate(validityYears, 0, 0).Format("2006-01-02")
}
