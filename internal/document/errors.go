package document

import "fmt"

// ExtractionError reports an unreadable or corrupt PDF. Fatal: the
// pipeline surfaces it before normalization begins and produces no
// partial result.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdf extraction: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("pdf extraction: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// TranslationError reports a translation service failure that survived
// the retry, or a response that broke the same-count contract. Fatal for
// the run; nothing is cached.
type TranslationError struct {
	Batch  int // 0-based batch ordinal
	Reason string
	Err    error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translation batch %d: %s: %v", e.Batch, e.Reason, e.Err)
	}
	return fmt.Sprintf("translation batch %d: %s", e.Batch, e.Reason)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// AlignmentError reports a broken bijection between sentences and
// translations, or a malformed finished document. This is an internal
// contract bug, never bad input; there is no recovery.
type AlignmentError struct {
	Reason string
	Seq    int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("alignment: %s (seq %d)", e.Reason, e.Seq)
}
