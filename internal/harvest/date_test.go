package harvest

import (
	"testing"

	"github.com/kbflow/bulletin-harvester/internal/patterns"
	"github.com/kbflow/bulletin-harvester/internal/pdf"
)

func TestDateExtract(t *testing.T) {
	e := NewDateExtractor(patterns.DefaultSet(), nil)

	tests := []struct {
		name string
		text string
		meta pdf.Metadata
		want string
	}{
		{
			name: "tagged publication date",
			text: "<Date> January 5, 2023",
			want: "2023-01-05",
		},
		{
			name: "published keyword",
			text: "Published: March 12, 2022\nSubject: Drum",
			want: "2022-03-12",
		},
		{
			name: "issued keyword with iso date",
			text: "Issued: 2021-07-30",
			want: "2021-07-30",
		},
		{
			name: "anchored date beats earlier bare date",
			text: "Printed May 1, 2020\nPublished: June 2, 2021",
			want: "2021-06-02",
		},
		{
			name: "bare month-name date",
			text: "released in the field on February 28, 2019",
			want: "2019-02-28",
		},
		{
			name: "numeric m/d/y",
			text: "effective 3/5/2021",
			want: "2021-03-05",
		},
		{
			name: "unparseable date skipped, next match wins",
			text: "Published: February 30, 2021 then corrected April 2, 2021",
			want: "2021-04-02",
		},
		{
			name: "no text date falls back to mod date",
			text: "no dates here",
			meta: pdf.Metadata{ModDate: "D:20230105120000Z", CreationDate: "D:20200101000000Z"},
			want: "2023-01-05",
		},
		{
			name: "creation date when mod date absent",
			text: "no dates here",
			meta: pdf.Metadata{CreationDate: "D:20200101000000Z"},
			want: "2020-01-01",
		},
		{
			name: "nothing anywhere",
			text: "no dates here",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Extract(tt.text, tt.meta); got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePDFDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"D:20230105120000+09'00'", "2023-01-05"},
		{"D:20230105", "2023-01-05"},
		{"2023-01-05", "2023-01-05"},
		{"D:20231340", ""}, // month 13 does not parse
		{"garbage", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParsePDFDate(tt.in); got != tt.want {
			t.Errorf("ParsePDFDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
