// Package render writes a finished interlinear document as JSON (the full
// model, for downstream readers) or as plain interlinear text (each source
// sentence followed by its translation).
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/entrelineas/entrelineas/internal/document"
)

// JSON writes the complete document model, indented.
func JSON(w io.Writer, doc *document.InterlinearDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// Text writes the interlinear layout: a page header, then each pair as a
// source line directly over its translation, blank line between pairs and
// between paragraphs.
func Text(w io.Writer, doc *document.InterlinearDocument) error {
	for gi, group := range doc.Pages {
		if gi > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "--- página %d ---\n\n", group.Page); err != nil {
			return err
		}
		for i := group.Start; i < group.Start+group.Count; i++ {
			pair := doc.Pairs[i]
			if i > group.Start && pair.Paragraph != doc.Pairs[i-1].Paragraph {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%s\n%s\n\n", pair.SourceText, pair.Translated); err != nil {
				return err
			}
		}
	}
	return nil
}
