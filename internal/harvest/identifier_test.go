package harvest

import (
	"testing"

	"github.com/kbflow/bulletin-harvester/internal/patterns"
)

func TestIdentifierExtract(t *testing.T) {
	e := NewIdentifierExtractor(patterns.DefaultSet(), nil)

	tests := []struct {
		name      string
		text      string
		filename  string
		wantFull  string
		wantShort string
	}{
		{
			name:      "reference line with short code",
			text:      "Service Bulletin Ref. No. 2M8-0016 (E099)",
			wantFull:  "2M8-0016",
			wantShort: "E099",
		},
		{
			name:      "reference line without short code",
			text:      "Ref. No. 2M8-0016\nSubject: Drum unit",
			wantFull:  "2M8-0016",
			wantShort: "",
		},
		{
			name:      "bare identifier with trailing short code",
			text:      "document 2XD-0052 (M105) follows",
			wantFull:  "2XD-0052",
			wantShort: "M105",
		},
		{
			name:      "short code found by dedicated search",
			text:      "Ref. No. 2M8-0016 applies.\nClassification (E099)",
			wantFull:  "2M8-0016",
			wantShort: "E099",
		},
		{
			name:      "filename form",
			filename:  "QA_M105_2XD_0052_SB.pdf",
			wantFull:  "2XD-0052",
			wantShort: "M105",
		},
		{
			name:      "filename revision marker",
			filename:  "QA_M105_2XD_0052_SB_R2.pdf",
			wantFull:  "2XD-0052 REV: 2",
			wantShort: "M105",
		},
		{
			name:      "text beats filename",
			text:      "Ref. No. 2M8-0016 (E099)",
			filename:  "QA_M105_2XD_0052_SB.pdf",
			wantFull:  "2M8-0016",
			wantShort: "E099",
		},
		{
			name:      "leaflet filename",
			filename:  "leaflet_E123.pdf",
			wantFull:  "LEAFLET (E123)",
			wantShort: "E123",
		},
		{
			name:     "no identifier anywhere",
			text:     "nothing to see here",
			filename: "scan001.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full, short := e.Extract(tt.text, tt.filename)
			if full != tt.wantFull {
				t.Errorf("full = %q, want %q", full, tt.wantFull)
			}
			if short != tt.wantShort {
				t.Errorf("short = %q, want %q", short, tt.wantShort)
			}
		})
	}
}

func TestAppendRevision(t *testing.T) {
	tests := []struct {
		full     string
		filename string
		want     string
	}{
		{"2XD-0052", "QA_M105_2XD_0052_SB_R2.pdf", "2XD-0052 REV: 2"},
		{"2XD-0052", "QA_M105_2XD_0052_SB_rev3.pdf", "2XD-0052 REV: 3"},
		{"2XD-0052", "QA_M105_2XD_0052_SB.pdf", "2XD-0052"},
		{"2XD-0052 REV: 1", "whatever_R2.pdf", "2XD-0052 REV: 1"},
		{"", "anything_R5.pdf", ""},
	}
	for _, tt := range tests {
		if got := appendRevision(tt.full, tt.filename); got != tt.want {
			t.Errorf("appendRevision(%q, %q) = %q, want %q", tt.full, tt.filename, got, tt.want)
		}
	}
}
