// Package patterns holds the recognition rules the field extractors run.
// Patterns are data, not code: each field category carries an ordered list
// and the position in the list is the rule's priority. A user-supplied
// override file can prepend additional rules per category.
package patterns

import (
	"regexp"
	"strings"
)

// Category identifies which field a pattern targets.
type Category string

const (
	CategoryIdentifier  Category = "identifier"
	CategoryModel       Category = "model"
	CategoryDate        Category = "date"
	CategorySubject     Category = "subject"
	CategoryAuthor      Category = "author"
	CategoryBoilerplate Category = "boilerplate"
)

// Kind tells the identifier extractor how to interpret a match's capture
// groups.
type Kind int

const (
	// KindAuto uses the group count: two non-empty groups are (full, short),
	// a single group is the full identifier only.
	KindAuto Kind = iota
	// KindShortFull captures (short, full), e.g. filename forms where the
	// short code precedes the catalogue number.
	KindShortFull
	// KindPrefixSuffix captures a short prefix code and a suffix; the full
	// identifier is rendered as "SUFFIX (PREFIX)".
	KindPrefixSuffix
)

// DateShape selects the parse routine for a matched date string.
type DateShape int

const (
	ShapeMonthName DateShape = iota
	ShapeISO
	ShapeMDY
)

// Pattern is a single compiled text-matching rule.
type Pattern struct {
	Expr string
	re   *regexp.Regexp
}

// IdentifierPattern is a Pattern plus its capture-group interpretation.
type IdentifierPattern struct {
	Pattern
	Kind Kind
}

// DatePattern is a Pattern plus the shape of the date it captures and
// whether it is anchored to a publication keyword.
type DatePattern struct {
	Pattern
	Shape    DateShape
	Anchored bool
}

// Compile builds a pattern, returning false for an invalid expression.
// Invalid rules are skipped rather than failing the load.
func Compile(expr string) (Pattern, bool) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, false
	}
	return Pattern{Expr: expr, re: re}, true
}

// MustCompile is Compile for the built-in defaults, which are known valid.
func MustCompile(expr string) Pattern {
	return Pattern{Expr: expr, re: regexp.MustCompile(expr)}
}

// Find returns the first match of the pattern in text, with capture groups.
// A nil return means no match.
func (p Pattern) Find(text string) []string {
	if p.re == nil {
		return nil
	}
	return p.re.FindStringSubmatch(text)
}

// FindAll returns every match of the pattern's first capture group (or the
// whole match when there are no groups).
func (p Pattern) FindAll(text string) []string {
	if p.re == nil {
		return nil
	}
	var out []string
	for _, m := range p.re.FindAllStringSubmatch(text, -1) {
		if len(m) > 1 && m[1] != "" {
			out = append(out, m[1])
		} else {
			out = append(out, m[0])
		}
	}
	return out
}

// FindAllSubmatch returns every match with its capture groups.
func (p Pattern) FindAllSubmatch(text string) [][]string {
	if p.re == nil {
		return nil
	}
	return p.re.FindAllStringSubmatch(text, -1)
}

// Matches reports whether the pattern matches anywhere in text.
func (p Pattern) Matches(text string) bool {
	return p.re != nil && p.re.MatchString(text)
}

// ReplaceAll removes or rewrites every match in text.
func (p Pattern) ReplaceAll(text, repl string) string {
	if p.re == nil {
		return text
	}
	return p.re.ReplaceAllString(text, repl)
}

// Set is the full rule inventory consumed by the extractors.
type Set struct {
	Identifier []IdentifierPattern
	// ShortForm is the dedicated parenthesized-short-code search used when
	// an identifier pattern yields only the full form.
	ShortForm Pattern
	Model     []Pattern
	Date      []DatePattern
	Subject   []Pattern
	Author    []Pattern
	// Boilerplate lines are removed by the text normalizer before any
	// field extraction runs.
	Boilerplate []Pattern

	// ModelExclusions are administrative words that look like model tokens;
	// any match containing one is discarded.
	ModelExclusions []string
	// AuthorBlocklist names placeholder authors treated as no match.
	AuthorBlocklist []string
}

// prependIdentifier adds a rule at highest priority unless an identical
// expression is already present.
func (s *Set) prependIdentifier(p IdentifierPattern) {
	for _, existing := range s.Identifier {
		if existing.Expr == p.Expr {
			return
		}
	}
	s.Identifier = append([]IdentifierPattern{p}, s.Identifier...)
}

func prependUnique(list []Pattern, p Pattern) []Pattern {
	for _, existing := range list {
		if existing.Expr == p.Expr {
			return list
		}
	}
	return append([]Pattern{p}, list...)
}

func (s *Set) prependDate(p DatePattern) {
	for _, existing := range s.Date {
		if existing.Expr == p.Expr {
			return
		}
	}
	s.Date = append([]DatePattern{p}, s.Date...)
}

// normalizeSpace collapses runs of whitespace to single spaces and trims.
// Shared by the extractors for match cleanup and dedupe keys.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSpace is normalizeSpace for use outside the package.
func NormalizeSpace(s string) string {
	return normalizeSpace(s)
}
