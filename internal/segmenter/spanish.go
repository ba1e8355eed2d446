package segmenter

import (
	"fmt"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/data"
)

// spanishAsset is the punkt training data compiled into the binary by the
// sentences library. Loading it is the only external prerequisite of the
// segmenter, so Preflight surfaces a decode failure before any pipeline
// work starts instead of deep inside a run.
const spanishAsset = "data/spanish.json"

var (
	spanishOnce sync.Once
	spanishTok  *punktTokenizer
	spanishErr  error
)

type punktTokenizer struct {
	tok *sentences.DefaultSentenceTokenizer
}

func (p *punktTokenizer) Tokenize(text string) []string {
	spans := p.tok.Tokenize(text)
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.Text)
	}
	return out
}

// Spanish returns the process-wide punkt tokenizer trained for Spanish.
// The training data is decoded once on first use.
func Spanish() (Tokenizer, error) {
	spanishOnce.Do(func() {
		b, err := data.Asset(spanishAsset)
		if err != nil {
			spanishErr = fmt.Errorf("spanish tokenizer data unavailable: %w", err)
			return
		}
		training, err := sentences.LoadTraining(b)
		if err != nil {
			spanishErr = fmt.Errorf("spanish tokenizer data corrupt: %w", err)
			return
		}
		spanishTok = &punktTokenizer{tok: sentences.NewSentenceTokenizer(training)}
	})
	return spanishTok, spanishErr
}

// Preflight verifies the Spanish tokenizer can be built. Call it at
// startup to fail fast when the capability is unavailable.
func Preflight() error {
	_, err := Spanish()
	return err
}
