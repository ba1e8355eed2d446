package normalizer_test

import (
	"strings"
	"testing"

	"github.com/entrelineas/entrelineas/internal/document"
	"github.com/entrelineas/entrelineas/internal/normalizer"
)

func normalize(t *testing.T, raw string, exceptions ...string) document.NormalizedBlock {
	t.Helper()
	n := normalizer.New(exceptions)
	return n.NormalizePage(document.RawPage{Page: 1, Text: raw})
}

func TestNormalize_Dehyphenation(t *testing.T) {
	got := normalize(t, "inter-\nlinear")
	if got.Text != "interlinear" {
		t.Errorf("expected %q, got %q", "interlinear", got.Text)
	}
}

func TestNormalize_DehyphenationInsideSentence(t *testing.T) {
	got := normalize(t, "Una pala-\nbra rota.")
	if got.Text != "Una palabra rota." {
		t.Errorf("expected joined word, got %q", got.Text)
	}
}

func TestNormalize_HyphenException(t *testing.T) {
	got := normalize(t, "nivel socio-\neconómico alto", "socio")
	if got.Text != "nivel socio-económico alto" {
		t.Errorf("exception should keep the hyphen, got %q", got.Text)
	}
}

func TestNormalize_CollapsesLineBreaks(t *testing.T) {
	got := normalize(t, "Hola\nmundo, una\nfrase partida.")
	if got.Text != "Hola mundo, una frase partida." {
		t.Errorf("expected single spaces, got %q", got.Text)
	}
}

func TestNormalize_PreservesParagraphBreak(t *testing.T) {
	got := normalize(t, "Primer párrafo.\n\nSegundo párrafo.")
	want := "Primer párrafo." + normalizer.ParagraphBreak + "Segundo párrafo."
	if got.Text != want {
		t.Errorf("expected %q, got %q", want, got.Text)
	}
}

func TestNormalize_CollapsesBlankLineRuns(t *testing.T) {
	got := normalize(t, "Uno.\n\n\n\nDos.")
	if strings.Count(got.Text, normalizer.ParagraphBreak) != 1 {
		t.Errorf("expected exactly one paragraph break, got %q", got.Text)
	}
}

func TestNormalize_WhitespaceRuns(t *testing.T) {
	got := normalize(t, "una   frase\t con    huecos")
	if got.Text != "una frase con huecos" {
		t.Errorf("expected collapsed whitespace, got %q", got.Text)
	}
}

func TestNormalize_CRLF(t *testing.T) {
	got := normalize(t, "línea uno\r\nlínea dos")
	if got.Text != "línea uno línea dos" {
		t.Errorf("expected CRLF handled, got %q", got.Text)
	}
}

func TestNormalize_EmptyPage(t *testing.T) {
	got := normalize(t, "  \n\n \t\n")
	if got.Text != "" {
		t.Errorf("expected empty text, got %q", got.Text)
	}
	if len(got.Offsets) != 0 {
		t.Errorf("expected no offsets for empty page")
	}
}

func TestNormalize_LeadingBlankLinesNoParagraph(t *testing.T) {
	got := normalize(t, "\n\nHola.")
	if got.Text != "Hola." {
		t.Errorf("leading blank lines should not produce a break, got %q", got.Text)
	}
}

func TestNormalize_NumericRangeHyphenKept(t *testing.T) {
	// A hyphen after a digit is not line-wrap hyphenation.
	got := normalize(t, "páginas 10-\n20 del libro")
	if got.Text != "páginas 10- 20 del libro" {
		t.Errorf("digit hyphen should not merge, got %q", got.Text)
	}
}

func TestNormalize_Offsets(t *testing.T) {
	raw := "Hola\nmundo"
	got := normalize(t, raw)
	if len(got.Offsets) != 2 {
		t.Fatalf("expected 2 offset spans, got %d", len(got.Offsets))
	}
	if got.Offsets[0].RawStart != 0 || got.Offsets[1].RawStart != 5 {
		t.Errorf("unexpected raw offsets: %+v", got.Offsets)
	}
	for i := 1; i < len(got.Offsets); i++ {
		if got.Offsets[i].NormStart <= got.Offsets[i-1].NormStart {
			t.Errorf("offsets not increasing: %+v", got.Offsets)
		}
	}
}

func TestNormalizePages_OrderAndCount(t *testing.T) {
	n := normalizer.New(nil)
	blocks := n.NormalizePages([]document.RawPage{
		{Page: 1, Text: "uno"},
		{Page: 2, Text: ""},
		{Page: 3, Text: "tres"},
	})
	if len(blocks) != 3 {
		t.Fatalf("expected one block per page, got %d", len(blocks))
	}
	for i, want := range []int{1, 2, 3} {
		if blocks[i].Page != want {
			t.Errorf("block %d has page %d, want %d", i, blocks[i].Page, want)
		}
	}
}
