package harvest

import (
	"log/slog"
	"strings"

	"github.com/kbflow/bulletin-harvester/internal/patterns"
	"github.com/kbflow/bulletin-harvester/internal/pdf"
)

// DefaultAuthor is the configured author applied when neither the text
// nor the document metadata names one.
const DefaultAuthor = "Knowledge Import"

// AuthorExtractor finds the document author.
type AuthorExtractor struct {
	rules     []patterns.Pattern
	blocklist []string
	fallback  string
	logger    *slog.Logger
}

func NewAuthorExtractor(set *patterns.Set, defaultAuthor string, logger *slog.Logger) *AuthorExtractor {
	if defaultAuthor == "" {
		defaultAuthor = DefaultAuthor
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorExtractor{
		rules:     set.Author,
		blocklist: set.AuthorBlocklist,
		fallback:  defaultAuthor,
		logger:    logger,
	}
}

// Extract returns the first keyword-anchored author not on the block-list,
// falling back to the embedded metadata author, then to the configured
// default.
func (e *AuthorExtractor) Extract(text string, meta pdf.Metadata) string {
	for _, rule := range e.rules {
		m := rule.Find(text)
		if m == nil {
			continue
		}
		author := strings.TrimSpace(m[1])
		if author == "" || e.blocked(author) {
			continue
		}
		return author
	}

	if author := strings.TrimSpace(meta.Author); author != "" && !e.blocked(author) {
		return author
	}
	return e.fallback
}

func (e *AuthorExtractor) blocked(author string) bool {
	lower := strings.ToLower(author)
	for _, bad := range e.blocklist {
		if lower == strings.ToLower(bad) {
			return true
		}
	}
	return false
}
