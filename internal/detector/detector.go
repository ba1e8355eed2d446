// Package detector identifies the language of extracted or translated
// text. The candidate set is restricted to English plus the Romance
// languages a Spanish-looking PDF is most often confused with, which
// keeps the detector small and its decisions sharp.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"
)

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.Spanish,
			lingua.English,
			lingua.Portuguese,
			lingua.Catalan,
			lingua.French,
			lingua.Italian,
		).
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the ISO 639-1 code of the detected language.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return lang.IsoCode639_1().String(), true
}

// IsSpanish reports whether text detects as Spanish. Undetectable text
// passes: the detector is advisory, not a gate.
func (d *Detector) IsSpanish(text string) bool {
	lang, ok := d.Detect(text)
	return !ok || lang == lingua.Spanish
}
