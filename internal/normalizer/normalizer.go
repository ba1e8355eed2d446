// Package normalizer repairs the layout damage PDF extraction leaves in
// page text: words broken across lines by hyphenation, stray line breaks
// inside sentences, and runs of whitespace. Paragraph breaks survive as a
// blank line ("\n\n"); everything else collapses to single spaces. Text is
// never reordered within a page.
package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/entrelineas/entrelineas/internal/document"
)

// ParagraphBreak is the marker separating paragraphs in normalized text.
const ParagraphBreak = "\n\n"

// Normalizer cleans raw page text. The zero value is usable; exceptions
// lists hyphenated compound prefixes (lowercase, without the hyphen) that
// keep their hyphen when rejoined across a line break.
type Normalizer struct {
	exceptions map[string]bool
}

// New returns a Normalizer keeping the hyphen for the given compound-word
// prefixes. The default exception list is empty.
func New(exceptions []string) *Normalizer {
	m := make(map[string]bool, len(exceptions))
	for _, e := range exceptions {
		m[strings.ToLower(strings.TrimSuffix(e, "-"))] = true
	}
	return &Normalizer{exceptions: m}
}

// NormalizePages cleans every page, preserving order, one block per page.
// A page that normalizes to empty text still produces its (empty) block.
func (n *Normalizer) NormalizePages(pages []document.RawPage) []document.NormalizedBlock {
	blocks := make([]document.NormalizedBlock, 0, len(pages))
	for _, p := range pages {
		blocks = append(blocks, n.NormalizePage(p))
	}
	return blocks
}

// NormalizePage cleans a single page.
func (n *Normalizer) NormalizePage(p document.RawPage) document.NormalizedBlock {
	text, offsets := n.normalize(p.Text)
	return document.NormalizedBlock{Page: p.Page, Text: text, Offsets: offsets}
}

// token is one whitespace-delimited word with its raw byte offset and
// whether a paragraph break precedes it.
type token struct {
	text string
	raw  int
	para bool
}

func (n *Normalizer) normalize(raw string) (string, []document.OffsetSpan) {
	toks := n.tokenize(raw)
	if len(toks) == 0 {
		return "", nil
	}

	var b strings.Builder
	spans := make([]document.OffsetSpan, 0, len(toks))
	for i, t := range toks {
		if i > 0 {
			if t.para {
				b.WriteString(ParagraphBreak)
			} else {
				b.WriteByte(' ')
			}
		}
		clean := norm.NFC.String(t.text)
		spans = append(spans, document.OffsetSpan{
			NormStart: b.Len(),
			RawStart:  t.raw,
			Length:    len(t.text),
		})
		b.WriteString(clean)
	}
	return b.String(), spans
}

// tokenize walks raw line by line, splitting each line into words,
// turning blank lines into paragraph breaks and merging a trailing
// line-break hyphen with the first word of the next line.
func (n *Normalizer) tokenize(raw string) []token {
	var toks []token
	pendingPara := false
	pendingHyphen := false

	offset := 0
	for _, line := range strings.Split(raw, "\n") {
		lineStart := offset
		offset += len(line) + 1
		line = strings.TrimSuffix(line, "\r")

		words := fieldsWithOffsets(line)
		if len(words) == 0 {
			if len(toks) > 0 {
				pendingPara = true
			}
			// A blank line breaks any pending hyphen join; the
			// hyphen stays as extracted.
			pendingHyphen = false
			continue
		}

		for i, w := range words {
			if i == 0 && pendingHyphen && !pendingPara {
				prev := &toks[len(toks)-1]
				stem := strings.TrimSuffix(prev.text, "-")
				if n.exceptions[strings.ToLower(stem)] {
					prev.text += w.text
				} else {
					prev.text = stem + w.text
				}
				pendingHyphen = false
				continue
			}
			toks = append(toks, token{text: w.text, raw: lineStart + w.off, para: pendingPara && len(toks) > 0})
			pendingPara = false
		}

		last := toks[len(toks)-1].text
		pendingHyphen = endsMidWord(last)
	}
	return toks
}

// endsMidWord reports whether a word looks broken by line-wrap
// hyphenation: a trailing hyphen preceded by a letter.
func endsMidWord(w string) bool {
	if len(w) < 2 || !strings.HasSuffix(w, "-") {
		return false
	}
	runes := []rune(strings.TrimSuffix(w, "-"))
	return len(runes) > 0 && unicode.IsLetter(runes[len(runes)-1])
}

type word struct {
	text string
	off  int
}

// fieldsWithOffsets is strings.Fields plus the byte offset of each field.
func fieldsWithOffsets(s string) []word {
	var out []word
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, word{text: s[start:i], off: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, word{text: s[start:], off: start})
	}
	return out
}
