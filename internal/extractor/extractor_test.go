package extractor

import (
	"errors"
	"testing"

	"github.com/entrelineas/entrelineas/internal/document"
)

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint([]byte("contenido del pdf"))
	b := Fingerprint([]byte("contenido del pdf"))
	if a != b {
		t.Errorf("same bytes must fingerprint equal: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestFingerprint_DistinguishesContent(t *testing.T) {
	if Fingerprint([]byte("uno")) == Fingerprint([]byte("dos")) {
		t.Error("different bytes must fingerprint differently")
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	_, err := Extract(nil)
	var eerr *document.ExtractionError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected ExtractionError, got %T: %v", err, err)
	}
}

func TestExtract_Garbage(t *testing.T) {
	_, err := Extract([]byte("this is definitely not a pdf"))
	var eerr *document.ExtractionError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected ExtractionError, got %T: %v", err, err)
	}
}

func TestExtract_TruncatedHeader(t *testing.T) {
	// Valid magic, nothing else: must fail cleanly, never panic.
	_, err := Extract([]byte("%PDF-1.4\n"))
	var eerr *document.ExtractionError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected ExtractionError, got %T: %v", err, err)
	}
}
