package harvest

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/kbflow/bulletin-harvester/internal/patterns"
)

// NotFoundSentinel marks a model search that came up empty. The review
// report distinguishes it from fields that are legitimately absent, so it
// is never collapsed to an empty string.
const NotFoundSentinel = "Not Found"

// ModelExtractor collects every affected product model named in a
// document.
type ModelExtractor struct {
	rules      []patterns.Pattern
	exclusions []string
	logger     *slog.Logger
}

func NewModelExtractor(set *patterns.Set, logger *slog.Logger) *ModelExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelExtractor{rules: set.Model, exclusions: set.ModelExclusions, logger: logger}
}

// Extract unions the matches of every model pattern across both the text
// and the filename. Unlike the identifier search this is not
// first-match-wins: bulletins routinely list several models under
// different layouts. Results are deduplicated, filtered against the
// exclusion list, and sorted for deterministic output.
func (e *ModelExtractor) Extract(text, filename string) string {
	seen := make(map[string]struct{})
	var models []string

	for _, source := range []string{text, filename} {
		if source == "" {
			continue
		}
		for _, rule := range e.rules {
			for _, match := range rule.FindAll(source) {
				model := patterns.NormalizeSpace(strings.Trim(match, " ,-"))
				if model == "" || e.excluded(model) {
					continue
				}
				if _, dup := seen[model]; dup {
					continue
				}
				seen[model] = struct{}{}
				models = append(models, model)
			}
		}
	}

	if len(models) == 0 {
		return NotFoundSentinel
	}
	sort.Strings(models)
	e.logger.Debug("harvest.models.ok", "count", len(models))
	return strings.Join(models, ", ")
}

func (e *ModelExtractor) excluded(model string) bool {
	lower := strings.ToLower(model)
	for _, term := range e.exclusions {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
