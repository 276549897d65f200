// Package harvest turns raw bulletin text into structured bibliographic
// fields. Every extractor in this package is total: a miss returns an
// empty or sentinel value, never an error.
package harvest

import (
	"regexp"
	"strings"

	"github.com/kbflow/bulletin-harvester/internal/patterns"
)

// hdrRefRewrite collapses the repeating page-header form of a reference
// line so the identifier patterns see a single anchor.
var hdrRefRewrite = regexp.MustCompile(`(?i)Service\s+Bulletin\s+Ref\.`)

// horizontal whitespace runs; newlines are kept so line-anchored subject
// patterns still see their boundaries
var hspaceRun = regexp.MustCompile(`[\t ]+`)

// Normalizer strips repeating boilerplate from raw extracted text before
// field extraction runs. Left in, the same footer lines corrupt greedy
// subject and model matches by polluting line boundaries.
type Normalizer struct {
	boilerplate []patterns.Pattern
}

func NewNormalizer(set *patterns.Set) *Normalizer {
	return &Normalizer{boilerplate: set.Boilerplate}
}

// Normalize removes page markers and boilerplate lines and collapses
// horizontal whitespace. Idempotent; unmatched input passes through
// unchanged.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = hdrRefRewrite.ReplaceAllString(text, "Ref.")
	for _, p := range n.boilerplate {
		text = p.ReplaceAll(text, "")
	}
	text = hspaceRun.ReplaceAllString(text, " ")
	return text
}

// stripExt removes a filename's extension for filename-derived fields.
func stripExt(filename string) string {
	if i := strings.LastIndex(filename, "."); i > 0 {
		return filename[:i]
	}
	return filename
}
