// Package assembler zips the sentence sequence with its translations into
// the final interlinear document. Pure data assembly, no I/O, no retries:
// any index that fails to line up is an upstream contract bug and aborts
// the run.
package assembler

import (
	"time"

	"github.com/entrelineas/entrelineas/internal/document"
)

// Assemble pairs each source sentence with its translation by sequence
// index, groups the pairs by page, and stamps the document with the
// source PDF fingerprint. pageCount is the total page count of the PDF,
// which may exceed the last page that produced sentences.
func Assemble(fingerprint string, pageCount int, sents []document.Sentence, trans []document.TranslatedSentence) (*document.InterlinearDocument, error) {
	if len(sents) != len(trans) {
		return nil, &document.AlignmentError{
			Reason: "sentence and translation counts differ",
			Seq:    len(sents),
		}
	}

	pairs := make([]document.AlignedPair, 0, len(sents))
	for i := range sents {
		if sents[i].Seq != i {
			return nil, &document.AlignmentError{Reason: "source sequence index out of place", Seq: sents[i].Seq}
		}
		if trans[i].Seq != i {
			return nil, &document.AlignmentError{Reason: "translation sequence index out of place", Seq: trans[i].Seq}
		}
		pairs = append(pairs, document.AlignedPair{
			Seq:        i,
			Page:       sents[i].Page,
			Paragraph:  sents[i].Paragraph,
			SourceText: sents[i].Text,
			Translated: trans[i].Text,
		})
	}

	doc := &document.InterlinearDocument{
		Fingerprint: fingerprint,
		PageCount:   pageCount,
		Pairs:       pairs,
		Pages:       groupByPage(pairs),
		BuiltAt:     time.Now().UTC(),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// groupByPage builds the pagination index. Pairs arrive in reading order,
// so each page is a contiguous run.
func groupByPage(pairs []document.AlignedPair) []document.PageGroup {
	var groups []document.PageGroup
	for i, p := range pairs {
		if len(groups) == 0 || groups[len(groups)-1].Page != p.Page {
			groups = append(groups, document.PageGroup{Page: p.Page, Start: i})
		}
		groups[len(groups)-1].Count++
	}
	return groups
}
