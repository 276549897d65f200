package harvest

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/kbflow/bulletin-harvester/internal/patterns"
)

var (
	revisionMarker = regexp.MustCompile(`(?i)[_-]r(?:ev)?\.?(\d+)`)
	leafletCode    = regexp.MustCompile(`(E\d+)`)
)

// IdentifierExtractor finds the document's full and short catalogue codes.
type IdentifierExtractor struct {
	rules  []patterns.IdentifierPattern
	short  patterns.Pattern
	logger *slog.Logger
}

func NewIdentifierExtractor(set *patterns.Set, logger *slog.Logger) *IdentifierExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentifierExtractor{rules: set.Identifier, short: set.ShortForm, logger: logger}
}

// Extract tries every identifier pattern against the text, then against
// the filename, first match wins. Both results are empty when nothing
// matches; that is a signal, not an error.
func (e *IdentifierExtractor) Extract(text, filename string) (full, short string) {
	// leaflets carry only a short code in the filename
	if strings.Contains(strings.ToLower(filename), "leaflet") {
		if m := leafletCode.FindStringSubmatch(filename); m != nil {
			short = m[1]
			full = "LEAFLET (" + short + ")"
			return full, short
		}
	}

	for _, source := range []string{text, filename} {
		if source == "" {
			continue
		}
		for _, rule := range e.rules {
			m := rule.Find(source)
			if m == nil {
				continue
			}

			switch rule.Kind {
			case patterns.KindPrefixSuffix:
				short = strings.TrimSpace(m[1])
				suffix := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(m[2]), "_", "-"))
				full = suffix + " (" + short + ")"
			case patterns.KindShortFull:
				short = strings.TrimSpace(m[1])
				full = strings.ReplaceAll(strings.TrimSpace(m[2]), "_", "-")
			default:
				full = strings.ReplaceAll(strings.TrimSpace(m[1]), "_", "-")
				if len(m) > 2 && m[2] != "" {
					short = strings.TrimSpace(m[2])
				} else if sm := e.short.Find(source); sm != nil {
					short = sm[1]
				}
			}

			if source == filename {
				full = appendRevision(full, filename)
			}
			e.logger.Debug("harvest.identifier.ok", "full", full, "short", short, "pattern", rule.Expr)
			return full, short
		}
	}

	return "", ""
}

// appendRevision adds the filename's encoded revision number to a
// filename-derived identifier that does not already carry one.
func appendRevision(full, filename string) string {
	if full == "" || strings.Contains(full, "REV:") {
		return full
	}
	if m := revisionMarker.FindStringSubmatch(filename); m != nil {
		return full + " REV: " + m[1]
	}
	return full
}
