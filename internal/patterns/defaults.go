package patterns

// DefaultSet returns the built-in rule inventory. Priority is list order;
// override files prepend ahead of these.
func DefaultSet() *Set {
	return &Set{
		Identifier: []IdentifierPattern{
			// Ref. No. 2M8-0016 (E099)
			{Pattern: MustCompile(`(?i)Ref\.\s*No\.\s*([A-Z0-9]{2,}[-][0-9]+)\s*\(([A-Z]\d+)\)`), Kind: KindAuto},
			// bare "2M8-0016 (E099)" anywhere
			{Pattern: MustCompile(`(?i)\b([A-Z0-9]{2,}[-][0-9]+)\s*\(([A-Z]\d+)\)`), Kind: KindAuto},
			// Ref. No. without a short code
			{Pattern: MustCompile(`(?i)Ref\.\s*No\.\s*([A-Z0-9]{2,}[-][0-9]+)`), Kind: KindAuto},
			// E-number prefix form: E099-2M8-0016
			{Pattern: MustCompile(`(?i)\b(E\d+)[-_]([A-Z0-9]{2,}[-_][0-9]+)\b`), Kind: KindPrefixSuffix},
			// filename form: QA_M105_2XD_0052_SB
			{Pattern: MustCompile(`(?i)QA[_-]([A-Z]\d{2,4})[_-]([A-Z0-9]{2,4}[_-][0-9]{3,5})`), Kind: KindShortFull},
			// long catalogue codes: E123-2M8-0016, AB-CD-0123
			{Pattern: MustCompile(`(?i)\b((?:E\d{3,}|[A-Z0-9]{2,})[-][A-Z0-9]{2,}[-][0-9]+)\b`), Kind: KindAuto},
			// short catalogue code: 2XD-0052
			{Pattern: MustCompile(`(?i)\b([A-Z0-9]{2,}-\d{4})\b`), Kind: KindAuto},
		},
		ShortForm: MustCompile(`\(([A-Z]\d+)\)`),

		Model: []Pattern{
			MustCompile(`(?i)\b((?:TASKalfa|ECOSYS)\s+[A-Za-z0-9]+(?:/[A-Za-z0-9]+)?)`),
			// explicit boundary class: \b treats the underscores common in
			// filenames as word characters and misses
			MustCompile(`(?i)(?:^|[^A-Za-z0-9])((?:FS|KM|CS)-[A-Za-z0-9]+)`),
		},

		Date: defaultDatePatterns(),

		Subject: []Pattern{
			MustCompile(`(?i)Subject\s*:\s*([^\n\r]+?)\s*(?:Model\s*:|Classification\s*:|Timing\s*:|Phenomenon\s*:|Problem\s*:|Cause\s*:|Measure\s*:|Remarks\s*:|[\r\n]|$)`),
			MustCompile(`(?i)Title\s*:\s*([^\n\r]+?)\s*(?:Model\s*:|Classification\s*:|Timing\s*:|Phenomenon\s*:|Problem\s*:|Cause\s*:|Measure\s*:|Remarks\s*:|[\r\n]|$)`),
		},

		Author: []Pattern{
			MustCompile(`(?i)\b(?:author|created\s+by)\s*:?\s*([A-Za-z][A-Za-z .'-]*)`),
		},

		Boilerplate: []Pattern{
			MustCompile(`\(Page\.\d+/\d+\)`),
			MustCompile(`(?i)\(Revised\s+issue\s+\d+\)`),
			MustCompile(`(?i)For\s+authorized\s+[A-Za-z]+\s+engineers\s+only\.?`),
			MustCompile(`(?i)Do\s+not\s+distribute\s+to\s+non-authorized\s+parties\.?`),
			MustCompile(`(?i)CONFIDENTIAL`),
			MustCompile(`(?i)KYOCERA\s+Document\s+Solutions\s+Inc\.`),
		},

		ModelExclusions: []string{
			"bulletin", "service", "series", "page", "ref", "subject",
		},
		AuthorBlocklist: []string{
			"unknown", "admin", "administrator", "user", "owner", "default",
		},
	}
}

const monthNameExpr = `(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),?\s+(\d{4})`

// publication keywords that anchor a date to its publishing context
const dateAnchorExpr = `(?:published|issue(?:d)?|publication|revision\s*date|<Date>)[^\n:]*[:\s>]\s*`

func defaultDatePatterns() []DatePattern {
	shapes := []struct {
		expr  string
		shape DateShape
	}{
		{monthNameExpr, ShapeMonthName},
		{`(\d{4})-(\d{2})-(\d{2})`, ShapeISO},
		{`(\d{1,2})/(\d{1,2})/(\d{4})`, ShapeMDY},
	}

	var out []DatePattern
	// anchored variants first: a date next to a publication keyword beats
	// any bare date elsewhere in the text
	for _, s := range shapes {
		out = append(out, DatePattern{
			Pattern:  MustCompile(`(?i)` + dateAnchorExpr + s.expr),
			Shape:    s.shape,
			Anchored: true,
		})
	}
	for _, s := range shapes {
		out = append(out, DatePattern{
			Pattern: MustCompile(`(?i)\b` + s.expr + `\b`),
			Shape:   s.shape,
		})
	}
	return out
}
