// Package extractor turns raw PDF bytes into per-page text and computes
// the content fingerprint used as the document cache key.
package extractor

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/entrelineas/entrelineas/internal/document"
)

// Fingerprint returns the deterministic cache key for a PDF: the hex
// SHA-256 of its byte content.
func Fingerprint(pdfBytes []byte) string {
	sum := sha256.Sum256(pdfBytes)
	return hex.EncodeToString(sum[:])
}

// Extract parses pdfBytes and returns one RawPage per page, 1-based, in
// document order. Pages with no extractable text yield an empty Text and
// are kept so page numbering stays intact. A corrupt or encrypted file
// returns a document.ExtractionError.
func Extract(pdfBytes []byte) (pages []document.RawPage, err error) {
	if len(pdfBytes) == 0 {
		return nil, &document.ExtractionError{Reason: "empty input"}
	}

	// The pdf package panics on some malformed files instead of
	// returning an error; convert that into an ExtractionError.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &document.ExtractionError{Reason: fmt.Sprintf("malformed pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, &document.ExtractionError{Reason: "cannot open pdf", Err: err}
	}

	total := reader.NumPage()
	if total == 0 {
		return nil, &document.ExtractionError{Reason: "pdf has no pages"}
	}

	pages = make([]document.RawPage, 0, total)
	for num := 1; num <= total; num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			pages = append(pages, document.RawPage{Page: num})
			continue
		}
		text, terr := page.GetPlainText(nil)
		if terr != nil {
			// A single unreadable page is tolerated; it simply
			// contributes no sentences downstream.
			text = ""
		}
		pages = append(pages, document.RawPage{Page: num, Text: text})
	}

	return pages, nil
}
