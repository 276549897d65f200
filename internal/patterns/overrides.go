package patterns

import (
	"encoding/json"
	"fmt"
	"os"
)

// OverrideFile is the on-disk shape of a user-supplied pattern override
// set. Entries are tried before the built-in defaults for their category;
// exact-duplicate expressions are suppressed.
type OverrideFile struct {
	Identifier  []IdentifierOverride `json:"identifier"`
	Model       []string             `json:"model"`
	Date        []DateOverride       `json:"date"`
	Subject     []string             `json:"subject"`
	Author      []string             `json:"author"`
	Boilerplate []string             `json:"boilerplate"`

	ModelExclusions []string `json:"model_exclusions"`
	AuthorBlocklist []string `json:"author_blocklist"`
}

// IdentifierOverride carries the capture-group interpretation alongside
// the expression. Kind values: "auto" (default), "short_full",
// "prefix_suffix".
type IdentifierOverride struct {
	Expr string `json:"expr"`
	Kind string `json:"kind"`
}

// DateOverride carries the date shape alongside the expression. Shape
// values: "month_name" (default), "iso", "mdy".
type DateOverride struct {
	Expr     string `json:"expr"`
	Shape    string `json:"shape"`
	Anchored bool   `json:"anchored"`
}

// LoadWithOverrides returns the default set extended with the rules from
// path. Invalid expressions are skipped; a missing or malformed file is an
// error so a typoed path does not silently run with defaults only.
func LoadWithOverrides(path string) (*Set, error) {
	set := DefaultSet()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern overrides: %w", err)
	}

	var file OverrideFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse pattern overrides %s: %w", path, err)
	}

	set.apply(&file)
	return set, nil
}

func (s *Set) apply(file *OverrideFile) {
	// prepend in reverse so the file's own order is preserved at the front
	for i := len(file.Identifier) - 1; i >= 0; i-- {
		o := file.Identifier[i]
		p, ok := Compile(o.Expr)
		if !ok {
			continue
		}
		s.prependIdentifier(IdentifierPattern{Pattern: p, Kind: parseKind(o.Kind)})
	}
	for i := len(file.Date) - 1; i >= 0; i-- {
		o := file.Date[i]
		p, ok := Compile(o.Expr)
		if !ok {
			continue
		}
		s.prependDate(DatePattern{Pattern: p, Shape: parseShape(o.Shape), Anchored: o.Anchored})
	}
	for i := len(file.Model) - 1; i >= 0; i-- {
		if p, ok := Compile(file.Model[i]); ok {
			s.Model = prependUnique(s.Model, p)
		}
	}
	for i := len(file.Subject) - 1; i >= 0; i-- {
		if p, ok := Compile(file.Subject[i]); ok {
			s.Subject = prependUnique(s.Subject, p)
		}
	}
	for i := len(file.Author) - 1; i >= 0; i-- {
		if p, ok := Compile(file.Author[i]); ok {
			s.Author = prependUnique(s.Author, p)
		}
	}
	for i := len(file.Boilerplate) - 1; i >= 0; i-- {
		if p, ok := Compile(file.Boilerplate[i]); ok {
			s.Boilerplate = prependUnique(s.Boilerplate, p)
		}
	}

	s.ModelExclusions = append(s.ModelExclusions, file.ModelExclusions...)
	s.AuthorBlocklist = append(s.AuthorBlocklist, file.AuthorBlocklist...)
}

func parseKind(s string) Kind {
	switch s {
	case "short_full":
		return KindShortFull
	case "prefix_suffix":
		return KindPrefixSuffix
	default:
		return KindAuto
	}
}

func parseShape(s string) DateShape {
	switch s {
	case "iso":
		return ShapeISO
	case "mdy":
		return ShapeMDY
	default:
		return ShapeMonthName
	}
}
