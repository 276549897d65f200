package pdf

// Document is the immutable per-file result of text extraction. Produced
// once by the Service, consumed once by the extraction pipeline.
type Document struct {
	Path        string
	Text        string
	Pages       int
	OCRRequired bool
}

// Metadata carries the embedded document information fields the
// extractors fall back to when the text itself is silent.
type Metadata struct {
	Author       string
	CreationDate string
	ModDate      string
}
