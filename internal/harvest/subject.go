package harvest

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kbflow/bulletin-harvester/internal/patterns"
)

// NoSubjectSentinel marks a document whose subject could not be derived
// from either text or filename.
const NoSubjectSentinel = "No Subject Found"

// DefaultMaxSubjectLength bounds the subject column in the import file.
const DefaultMaxSubjectLength = 250

var (
	filenamePrefix = regexp.MustCompile(`(?i)^(?:QA|SB)[_-][A-Z0-9]+[_-]`)
	filenameSuffix = regexp.MustCompile(`(?i)[_-]SB.*$`)
	separators     = regexp.MustCompile(`[_-]+`)
)

// SubjectStrategy extracts a document subject from normalized text. The
// boolean reports whether the strategy produced anything usable.
//
// The pattern-based implementation below is the deterministic default; a
// caller may plug an enhanced strategy (for example a summarizer) into the
// Harvester, but correctness never depends on one.
type SubjectStrategy interface {
	ExtractSubject(text string) (string, bool)
}

// SubjectExtractor is the default keyword-anchored SubjectStrategy.
type SubjectExtractor struct {
	rules  []patterns.Pattern
	maxLen int
	logger *slog.Logger
}

func NewSubjectExtractor(set *patterns.Set, maxLen int, logger *slog.Logger) *SubjectExtractor {
	if maxLen <= 0 {
		maxLen = DefaultMaxSubjectLength
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SubjectExtractor{rules: set.Subject, maxLen: maxLen, logger: logger}
}

// ExtractSubject implements SubjectStrategy.
func (e *SubjectExtractor) ExtractSubject(text string) (string, bool) {
	for _, rule := range e.rules {
		m := rule.Find(text)
		if m == nil {
			continue
		}
		subject := patterns.NormalizeSpace(m[1])
		if subject == "" {
			continue
		}
		return subject, true
	}
	return "", false
}

// Extract returns the document subject: anchored patterns first, then the
// optional enhancer, then a filename-derived fallback, then the sentinel.
// The document's own identifier is removed so it cannot double as the
// subject.
func (e *SubjectExtractor) Extract(text, fullID, shortID, filename string, enhancer SubjectStrategy) string {
	subject, ok := e.ExtractSubject(text)
	if !ok && enhancer != nil {
		subject, ok = enhancer.ExtractSubject(text)
	}
	if ok {
		subject = e.clean(subject, fullID, shortID)
		if subject != "" {
			return e.truncate(subject)
		}
	}

	if fallback := subjectFromFilename(filename); fallback != "" {
		e.logger.Debug("harvest.subject.filename_fallback", "file", filename)
		return e.truncate(fallback)
	}
	return NoSubjectSentinel
}

func (e *SubjectExtractor) clean(subject, fullID, shortID string) string {
	if fullID != "" {
		subject = strings.ReplaceAll(subject, fullID, "")
	}
	if shortID != "" {
		subject = strings.ReplaceAll(subject, "("+shortID+")", "")
	}
	return strings.Trim(patterns.NormalizeSpace(subject), " ,-")
}

// truncate cuts at the last whitespace boundary before the limit and
// appends an ellipsis marker. Without a space to cut on, the cut backs
// off to a rune boundary so a multibyte character is never split.
func (e *SubjectExtractor) truncate(subject string) string {
	if len(subject) <= e.maxLen {
		return subject
	}
	cut := subject[:e.maxLen]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	} else {
		for len(cut) > 0 && !utf8.RuneStart(subject[len(cut)]) {
			cut = cut[:len(cut)-1]
		}
	}
	return cut + "..."
}

func subjectFromFilename(filename string) string {
	if filename == "" {
		return ""
	}
	name := stripExt(filename)
	name = filenamePrefix.ReplaceAllString(name, "")
	name = filenameSuffix.ReplaceAllString(name, "")
	name = separators.ReplaceAllString(name, " ")
	return patterns.NormalizeSpace(name)
}
