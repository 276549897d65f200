package harvest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kbflow/bulletin-harvester/internal/patterns"
)

func TestSubjectExtract(t *testing.T) {
	e := NewSubjectExtractor(patterns.DefaultSet(), 0, nil)

	tests := []struct {
		name     string
		text     string
		fullID   string
		shortID  string
		filename string
		want     string
	}{
		{
			name: "subject line",
			text: "Ref. No. 2M8-0016\nSubject: Image quality improvement\nModel: TASKalfa",
			want: "Image quality improvement",
		},
		{
			name: "title line",
			text: "Title: Firmware update procedure\n",
			want: "Firmware update procedure",
		},
		{
			name:    "identifier stripped from subject",
			text:    "Subject: 2M8-0016 (E099) Drum unit replacement\n",
			fullID:  "2M8-0016",
			shortID: "E099",
			want:    "Drum unit replacement",
		},
		{
			name:     "filename fallback",
			text:     "no labeled subject in this text",
			filename: "QA_M105_Drum_Unit_Replacement_SB.pdf",
			want:     "Drum Unit Replacement",
		},
		{
			name: "sentinel when nothing usable",
			text: "no labeled subject in this text",
			want: NoSubjectSentinel,
		},
		{
			name:   "subject that is only the identifier falls back",
			text:   "Subject: 2M8-0016\n",
			fullID: "2M8-0016",
			want:   NoSubjectSentinel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text, tt.fullID, tt.shortID, tt.filename, nil)
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubjectTruncation(t *testing.T) {
	e := NewSubjectExtractor(patterns.DefaultSet(), 40, nil)

	long := "Subject: " + strings.Repeat("word ", 20) + "\n"
	got := e.Extract(long, "", "", "", nil)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if len(got) > 43 {
		t.Errorf("truncated subject too long: %d chars", len(got))
	}
	if strings.HasSuffix(strings.TrimSuffix(got, "..."), " ") {
		t.Errorf("cut should land on a word boundary: %q", got)
	}
}

func TestSubjectTruncationRuneBoundary(t *testing.T) {
	e := NewSubjectExtractor(patterns.DefaultSet(), 10, nil)

	// no space before the limit: the cut must land on a rune boundary,
	// not mid-character
	text := "Subject: " + strings.Repeat("感", 8) + "\n"
	got := e.Extract(text, "", "", "", nil)

	if !utf8.ValidString(got) {
		t.Errorf("truncated subject is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if strings.Contains(got, "�") {
		t.Errorf("replacement character in truncated subject: %q", got)
	}
}

type staticStrategy struct{ subject string }

func (s staticStrategy) ExtractSubject(string) (string, bool) {
	return s.subject, s.subject != ""
}

func TestSubjectEnhancerFallback(t *testing.T) {
	e := NewSubjectExtractor(patterns.DefaultSet(), 0, nil)

	// enhancer consulted only when the patterns miss
	got := e.Extract("nothing labeled here", "", "", "", staticStrategy{"Summarized subject"})
	if got != "Summarized subject" {
		t.Errorf("Extract() = %q, want enhancer output", got)
	}

	got = e.Extract("Subject: Pattern subject\n", "", "", "", staticStrategy{"Summarized subject"})
	if got != "Pattern subject" {
		t.Errorf("Extract() = %q, pattern match should win", got)
	}
}

func TestSubjectFromFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"QA_M105_Drum_Unit_SB.pdf", "Drum Unit"},
		{"SB-2XD-0052-Paper-Jam.pdf", "0052 Paper Jam"},
		{"plain_notes.pdf", "plain notes"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := subjectFromFilename(tt.in); got != tt.want {
			t.Errorf("subjectFromFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
