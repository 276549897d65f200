package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// samplePDF writes a small single-page PDF with computed xref offsets.
func samplePDF(t *testing.T, dir string) string {
	t.Helper()
	content := "BT /F1 12 Tf 72 720 Td (Ref. No. 2M8-0016) Tj ET"
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs)+1)
	for i, obj := range objs {
		offsets[i+1] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objs)+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objs); i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objs)+1, xref)

	path := filepath.Join(dir, "sample.pdf")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write sample pdf: %v", err)
	}
	return path
}

func corruptPDF(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "corrupt.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatalf("write corrupt pdf: %v", err)
	}
	return path
}

func TestNewServiceDefaults(t *testing.T) {
	s := NewService(0, nil)
	if s.maxFileSize != DefaultMaxFileSize {
		t.Errorf("maxFileSize = %d, want %d", s.maxFileSize, DefaultMaxFileSize)
	}
	if s.textThreshold != DefaultTextThreshold {
		t.Errorf("textThreshold = %d, want %d", s.textThreshold, DefaultTextThreshold)
	}
}

func TestNeedsOCR(t *testing.T) {
	s := NewService(0, nil)
	dir := t.TempDir()

	// unreadable file reports true
	if !s.NeedsOCR(filepath.Join(dir, "missing.pdf")) {
		t.Error("missing file should need OCR")
	}
	if !s.NeedsOCR(corruptPDF(t, dir)) {
		t.Error("corrupt file should need OCR")
	}

	// a near-empty text layer is below the threshold
	if !s.NeedsOCR(samplePDF(t, dir)) {
		t.Error("sparse text layer should need OCR")
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	s := NewService(0, nil)
	if got := s.ExtractText(filepath.Join(t.TempDir(), "missing.pdf")); got != "" {
		t.Errorf("ExtractText on missing file = %q, want empty", got)
	}
}

func TestExtractTextOversizedFile(t *testing.T) {
	s := NewService(4, nil) // 4 bytes
	path := samplePDF(t, t.TempDir())
	if got := s.ExtractText(path); got != "" {
		t.Errorf("ExtractText over size cap = %q, want empty", got)
	}
}

func TestValidate(t *testing.T) {
	s := NewService(0, nil)
	dir := t.TempDir()

	if err := s.Validate(samplePDF(t, dir)); err != nil {
		t.Errorf("Validate on well-formed file: %v", err)
	}
	if err := s.Validate(corruptPDF(t, dir)); err == nil {
		t.Error("Validate on corrupt file should fail")
	}
}

func TestPageCount(t *testing.T) {
	s := NewService(0, nil)
	n, err := s.PageCount(samplePDF(t, t.TempDir()))
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 1 {
		t.Errorf("PageCount = %d, want 1", n)
	}
}

func TestLoadCorrupt(t *testing.T) {
	s := NewService(0, nil)
	doc := s.Load(corruptPDF(t, t.TempDir()))

	if !doc.OCRRequired {
		t.Error("corrupt document should be flagged for OCR")
	}
	if doc.Text != "" {
		t.Errorf("Text = %q, want empty", doc.Text)
	}
}

func TestMetadataCorrupt(t *testing.T) {
	s := NewService(0, nil)
	meta := s.Metadata(corruptPDF(t, t.TempDir()))

	if meta.Author != "" || meta.ModDate != "" || meta.CreationDate != "" {
		t.Errorf("Metadata on corrupt file = %+v, want zero value", meta)
	}
}
