// Package record accumulates per-document extraction results and
// finalizes them into rows for the knowledge-base import file.
package record

import (
	"github.com/kbflow/bulletin-harvester/internal/harvest"
)

// ProcessingStatus describes how a document made it through the pipeline.
type ProcessingStatus string

const (
	StatusSuccess     ProcessingStatus = "Success"
	StatusNeedsReview ProcessingStatus = "Needs Review"
	StatusOCRRequired ProcessingStatus = "OCR Required"
	StatusFailed      ProcessingStatus = "Failed"
)

// CandidateRecord is the mutable per-document accumulator. It is created
// empty, populated field by field by the extractors, and finalized once
// by the Assembler; after finalization it is never mutated.
type CandidateRecord struct {
	FileName      string
	FullID        string
	ShortID       string
	Models        string
	Subject       string
	Author        string
	PublishedDate string
	DocType       harvest.DocumentType
	NeedsReview   bool
	Status        ProcessingStatus
}

// New builds a record from harvested fields, applying the review
// invariant: a record needs review whenever the full identifier, model
// list, or subject is missing or a sentinel, or its status is anything
// but Success. An OCR-required signal overrides the status but not the
// review flag's truth.
func New(f harvest.Fields, filename string, ocrRequired bool) CandidateRecord {
	r := CandidateRecord{
		FileName:      filename,
		FullID:        f.FullID,
		ShortID:       f.ShortID,
		Models:        f.Models,
		Subject:       f.Subject,
		Author:        f.Author,
		PublishedDate: f.PublishedDate,
		DocType:       f.DocType,
	}

	missing := r.fieldsMissing()
	switch {
	case ocrRequired:
		r.Status = StatusOCRRequired
	case missing:
		r.Status = StatusNeedsReview
	default:
		r.Status = StatusSuccess
	}
	r.NeedsReview = missing || r.Status != StatusSuccess
	return r
}

// Failed synthesizes the record for a document that produced no usable
// text or hit an unexpected error. The batch continues around it.
func Failed(filename, reason string) CandidateRecord {
	return CandidateRecord{
		FileName:    filename,
		Models:      "Extraction Error",
		Subject:     "ERROR: " + reason,
		Author:      harvest.DefaultAuthor,
		DocType:     harvest.DocTypeUnknown,
		NeedsReview: true,
		Status:      StatusFailed,
	}
}

func (r CandidateRecord) fieldsMissing() bool {
	return r.FullID == "" ||
		r.Models == "" || r.Models == harvest.NotFoundSentinel ||
		r.Subject == "" || r.Subject == harvest.NoSubjectSentinel
}
