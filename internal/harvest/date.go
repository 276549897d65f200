package harvest

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/kbflow/bulletin-harvester/internal/patterns"
	"github.com/kbflow/bulletin-harvester/internal/pdf"
)

const isoDate = "2006-01-02"

// embedded PDF date values look like D:YYYYMMDDHHmmSS...
var pdfDatePrefix = regexp.MustCompile(`D:(\d{4})(\d{2})(\d{2})`)

// DateExtractor finds the publication date and renders it as ISO 8601.
type DateExtractor struct {
	rules  []patterns.DatePattern
	logger *slog.Logger
}

func NewDateExtractor(set *patterns.Set, logger *slog.Logger) *DateExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DateExtractor{rules: set.Date, logger: logger}
}

// Extract tries the ordered date patterns (keyword-anchored shapes before
// bare ones), parsing each capture according to its shape. A capture that
// fails to parse is treated as no match and the search continues. When the
// text has no usable date, the document's embedded metadata dates are the
// fallback. Returns "" when nothing parses.
func (e *DateExtractor) Extract(text string, meta pdf.Metadata) string {
	for _, rule := range e.rules {
		for _, m := range rule.FindAllSubmatch(text) {
			if len(m) < 4 {
				continue
			}
			if iso, ok := parseShaped(rule.Shape, m[1], m[2], m[3]); ok {
				e.logger.Debug("harvest.date.ok", "date", iso, "anchored", rule.Anchored)
				return iso
			}
		}
	}

	// mod date first: a revised bulletin's embedded mod date tracks the
	// revision, which is what the knowledge base wants as "published"
	for _, raw := range []string{meta.ModDate, meta.CreationDate} {
		if iso := ParsePDFDate(raw); iso != "" {
			e.logger.Debug("harvest.date.metadata", "date", iso)
			return iso
		}
	}
	return ""
}

func parseShaped(shape patterns.DateShape, g1, g2, g3 string) (string, bool) {
	var layoutIn, value string
	switch shape {
	case patterns.ShapeMonthName:
		layoutIn, value = "January 2 2006", fmt.Sprintf("%s %s %s", g1, g2, g3)
	case patterns.ShapeISO:
		layoutIn, value = "2006 01 02", fmt.Sprintf("%s %s %s", g1, g2, g3)
	case patterns.ShapeMDY:
		layoutIn, value = "1 2 2006", fmt.Sprintf("%s %s %s", g1, g2, g3)
	default:
		return "", false
	}
	t, err := time.Parse(layoutIn, value)
	if err != nil {
		return "", false
	}
	return t.Format(isoDate), true
}

// ParsePDFDate re-renders an embedded PDF metadata date (D:YYYYMMDD...) as
// ISO 8601. Values already in ISO form pass through; anything else yields
// "".
func ParsePDFDate(raw string) string {
	if raw == "" {
		return ""
	}
	if m := pdfDatePrefix.FindStringSubmatch(raw); m != nil {
		t, err := time.Parse("20060102", m[1]+m[2]+m[3])
		if err != nil {
			return ""
		}
		return t.Format(isoDate)
	}
	if t, err := time.Parse(isoDate, raw); err == nil {
		return t.Format(isoDate)
	}
	return ""
}
