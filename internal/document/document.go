// Package document defines the data model shared by every pipeline stage:
// raw extracted pages, normalized text blocks, segmented sentences, their
// translations, and the final interlinear document that pairs them.
package document

import "time"

// RawPage is the text of a single PDF page exactly as the extractor
// produced it. Page numbering is 1-based. Immutable once extracted.
type RawPage struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// OffsetSpan maps a run of the normalized text back to the raw page text.
// Kept for diagnostics only; no pipeline stage depends on it.
type OffsetSpan struct {
	NormStart int `json:"norm_start"`
	RawStart  int `json:"raw_start"`
	Length    int `json:"length"`
}

// NormalizedBlock is the cleaned text of one page. Line-wrap hyphens are
// rejoined and intra-sentence line breaks collapsed; paragraph breaks
// survive as "\n\n".
type NormalizedBlock struct {
	Page    int          `json:"page"`
	Text    string       `json:"text"`
	Offsets []OffsetSpan `json:"offsets,omitempty"`
}

// Sentence is one source-language sentence in global reading order.
// Seq is 0-based and strictly increasing across the whole document.
// Text is trimmed, non-empty, and contains no line-break artifacts.
type Sentence struct {
	Seq       int    `json:"seq"`
	Page      int    `json:"page"`
	Paragraph int    `json:"paragraph"`
	Text      string `json:"text"`
}

// TranslatedSentence carries the translation of the Sentence with the
// same Seq. The two collections are always a full bijection on Seq.
type TranslatedSentence struct {
	Seq  int    `json:"seq"`
	Text string `json:"text"`
}

// AlignedPair is the unit consumed by rendering: a source sentence and
// its translation, with page and paragraph placement.
type AlignedPair struct {
	Seq        int    `json:"seq"`
	Page       int    `json:"page"`
	Paragraph  int    `json:"paragraph"`
	SourceText string `json:"source_text"`
	Translated string `json:"translated"`
}

// PageGroup lists the pair indices belonging to one page, in order.
type PageGroup struct {
	Page  int `json:"page"`
	Start int `json:"start"` // index into Pairs of the first pair on this page
	Count int `json:"count"`
}

// InterlinearDocument is the finished, immutable artifact: every source
// sentence followed by its translation, grouped by page, keyed by the
// fingerprint of the source PDF bytes.
type InterlinearDocument struct {
	Fingerprint string        `json:"fingerprint"`
	PageCount   int           `json:"page_count"`
	Pairs       []AlignedPair `json:"pairs"`
	Pages       []PageGroup   `json:"pages"`
	BuiltAt     time.Time     `json:"built_at"`
}

// Validate checks the structural invariants of a finished document:
// contiguous Seq starting at 0, non-decreasing page numbers, and page
// groups that cover the pair slice exactly.
func (d *InterlinearDocument) Validate() error {
	prevPage := 0
	for i, p := range d.Pairs {
		if p.Seq != i {
			return &AlignmentError{Reason: "sequence indices not contiguous", Seq: p.Seq}
		}
		if p.Page < prevPage {
			return &AlignmentError{Reason: "page numbers decrease", Seq: p.Seq}
		}
		prevPage = p.Page
	}
	covered := 0
	for _, g := range d.Pages {
		if g.Start != covered {
			return &AlignmentError{Reason: "page groups do not tile the pair sequence", Seq: g.Start}
		}
		covered += g.Count
	}
	if covered != len(d.Pairs) {
		return &AlignmentError{Reason: "page groups do not cover all pairs", Seq: covered}
	}
	return nil
}
