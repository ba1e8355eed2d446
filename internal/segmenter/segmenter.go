// Package segmenter splits normalized page text into sentences. Sentence
// boundary decisions (abbreviations, quotations, decimal numbers) are
// fully delegated to a Tokenizer; the segmenter only trims, drops empty
// spans, and assigns global sequence numbers. A sentence never crosses a
// page boundary: segmentation runs per page block, so text that continues
// onto the next page ends at the boundary. That is a documented
// simplification, not a linguistic rule.
package segmenter

import (
	"strings"

	"github.com/entrelineas/entrelineas/internal/document"
	"github.com/entrelineas/entrelineas/internal/normalizer"
)

// Tokenizer is the external sentence-boundary capability: it produces
// non-overlapping sentence spans in input order. Implementations must be
// restartable (safe to call repeatedly) and stateless across calls.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Segmenter turns normalized blocks into a globally indexed sentence
// sequence.
type Segmenter struct {
	tok Tokenizer
}

// New returns a Segmenter using tok for boundary detection.
func New(tok Tokenizer) *Segmenter {
	return &Segmenter{tok: tok}
}

// Segment walks blocks in page order and returns every surviving sentence
// with its owning page, paragraph ordinal, and the next global sequence
// index. Blocks (or paragraphs) that yield nothing contribute nothing and
// do not break index contiguity.
func (s *Segmenter) Segment(blocks []document.NormalizedBlock) []document.Sentence {
	var out []document.Sentence
	seq := 0
	paragraph := 0

	for _, block := range blocks {
		if strings.TrimSpace(block.Text) == "" {
			continue
		}
		for _, para := range strings.Split(block.Text, normalizer.ParagraphBreak) {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			added := false
			for _, span := range s.tok.Tokenize(para) {
				text := strings.TrimSpace(span)
				if text == "" {
					continue
				}
				out = append(out, document.Sentence{
					Seq:       seq,
					Page:      block.Page,
					Paragraph: paragraph,
					Text:      text,
				})
				seq++
				added = true
			}
			if added {
				paragraph++
			}
		}
	}
	return out
}
