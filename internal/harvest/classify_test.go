package harvest

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want DocumentType
	}{
		{"service bulletin", "KYOCERA Service Bulletin Ref. No. 2M8-0016", DocTypeServiceBulletin},
		{"quality assurance", "QA division notice", DocTypeQualityAssurance},
		{"technical bulletin", "Technical Bulletin: fuser temperatures", DocTypeTechnicalBulletin},
		{"technical note", "technical note on paper feed", DocTypeTechnicalBulletin},
		{"installation guide", "Installation Guide for finisher unit", DocTypeInstallationGuide},
		{"user manual", "refer to the User Manual section 3", DocTypeUserManual},
		{"operation guide", "see the Operation Guide", DocTypeUserManual},
		{"troubleshooting", "Troubleshooting steps for error C4600", DocTypeTroubleshooting},
		{"software bulletin", "printer driver version 8.1 update", DocTypeSoftwareBulletin},
		{"unknown", "miscellaneous memo text", DocTypeUnknown},
		{"empty", "", DocTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	// "service bulletin" outranks every later rule even when their
	// phrases are present too
	text := "Service Bulletin covering driver installation guide troubleshooting"
	if got := Classify(text); got != DocTypeServiceBulletin {
		t.Errorf("Classify() = %q, want %q", got, DocTypeServiceBulletin)
	}
}
