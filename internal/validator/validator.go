// Package validator spot-checks that translated sentences are actually in
// the target language. Validation is advisory: it reports findings, it
// never fails a run.
package validator

import (
	"fmt"
	"strings"

	"github.com/entrelineas/entrelineas/internal/detector"
	"github.com/entrelineas/entrelineas/internal/document"
)

// minValidationLength is the minimum rune count required to attempt
// language detection. Shorter texts produce unreliable results and are
// accepted without validation.
const minValidationLength = 20

// Validator checks translation output language. The underlying language
// detector is expensive to build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator backed by the lingua-go language detector.
func New() *Validator {
	return &Validator{det: detector.New()}
}

// IsValid returns true when text appears to be written in targetLang.
// Short texts and texts whose language cannot be determined pass. When
// the detected language differs the returned error names both codes.
func (v *Validator) IsValid(text, targetLang string) (bool, error) {
	if targetLang == "" {
		return true, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return false, fmt.Errorf("translation is empty")
	}
	if len([]rune(text)) < minValidationLength {
		return true, nil
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		return true, nil
	}
	if !strings.EqualFold(detected, targetLang) {
		return false, fmt.Errorf("expected %s but detected %s", targetLang, detected)
	}
	return true, nil
}

// SampleDocument checks up to sample evenly spaced translations in doc
// against targetLang and returns a finding per mismatch.
func (v *Validator) SampleDocument(doc *document.InterlinearDocument, targetLang string, sample int) []error {
	if sample <= 0 || len(doc.Pairs) == 0 {
		return nil
	}
	// Ceiling division so at most sample pairs are visited.
	step := (len(doc.Pairs) + sample - 1) / sample
	if step < 1 {
		step = 1
	}

	var findings []error
	for i := 0; i < len(doc.Pairs); i += step {
		if ok, err := v.IsValid(doc.Pairs[i].Translated, targetLang); !ok {
			findings = append(findings, fmt.Errorf("pair %d: %w", doc.Pairs[i].Seq, err))
		}
	}
	return findings
}
