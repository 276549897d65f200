package harvest

import (
	"regexp"
	"strings"
)

// DocumentType is the fixed classification enumeration for bulletins.
type DocumentType string

const (
	DocTypeServiceBulletin   DocumentType = "Service Bulletin"
	DocTypeQualityAssurance  DocumentType = "Quality Assurance"
	DocTypeTechnicalBulletin DocumentType = "Technical Bulletin"
	DocTypeInstallationGuide DocumentType = "Installation Guide"
	DocTypeUserManual        DocumentType = "User Manual"
	DocTypeTroubleshooting   DocumentType = "Troubleshooting Guide"
	DocTypeSoftwareBulletin  DocumentType = "Software Bulletin"
	DocTypeUnknown           DocumentType = "Unknown"
)

// classifierRule pairs a document type with the phrase test that selects
// it. Order is priority; first hit wins.
type classifierRule struct {
	docType DocumentType
	re      *regexp.Regexp
}

var classifierRules = []classifierRule{
	{DocTypeServiceBulletin, regexp.MustCompile(`\bservice\s+bulletin\b`)},
	{DocTypeQualityAssurance, regexp.MustCompile(`\b(?:qa|quality\s+assurance)\b`)},
	{DocTypeTechnicalBulletin, regexp.MustCompile(`\btechnical\s+(?:bulletin|note)\b`)},
	{DocTypeInstallationGuide, regexp.MustCompile(`\binstallation\s+(?:guide|manual|instructions)\b`)},
	{DocTypeUserManual, regexp.MustCompile(`\b(?:user|operation)\s+(?:manual|guide)\b`)},
	{DocTypeTroubleshooting, regexp.MustCompile(`\btroubleshoot(?:ing)?\b`)},
	{DocTypeSoftwareBulletin, regexp.MustCompile(`\b(?:software|application|driver|utility|print\s+server|cloud)\b`)},
}

// Classify identifies the document type from its content.
func Classify(text string) DocumentType {
	lower := strings.ToLower(text)
	for _, rule := range classifierRules {
		if rule.re.MatchString(lower) {
			return rule.docType
		}
	}
	return DocTypeUnknown
}
