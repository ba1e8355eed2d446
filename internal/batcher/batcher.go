// Package batcher partitions the sentence sequence into bounded batches,
// dispatches them to a translation service (concurrently, up to a
// parallelism limit), and reassembles the per-sentence translations by
// original sequence index. Batching is purely a throughput optimization:
// the output is identical for any batch size.
package batcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/entrelineas/entrelineas/internal/document"
	"github.com/entrelineas/entrelineas/internal/translator"
)

const (
	// DefaultBatchSize balances service throughput against request size.
	DefaultBatchSize = 8
	// DefaultParallelism bounds concurrent in-flight batches.
	DefaultParallelism = 4
	// DefaultTimeout applies to each translation attempt.
	DefaultTimeout = 60 * time.Second
)

// Config tunes the batcher. Zero values take the defaults above.
type Config struct {
	BatchSize   int           `mapstructure:"batch_size"`
	Parallelism int           `mapstructure:"parallelism"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Parallelism <= 0 {
		c.Parallelism = DefaultParallelism
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Batcher drives a translator.Service over a full sentence sequence.
type Batcher struct {
	svc    translator.Service
	cfg    Config
	logger *zap.Logger
}

// New builds a Batcher around svc. logger may be nil.
func New(svc translator.Service, cfg Config, logger *zap.Logger) *Batcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batcher{svc: svc, cfg: cfg.withDefaults(), logger: logger}
}

// Translate returns one TranslatedSentence per input Sentence, aligned by
// sequence index. A batch that fails is retried once with the same input;
// a second failure, or a response whose length does not match the batch,
// aborts the whole run with a document.TranslationError.
func (b *Batcher) Translate(ctx context.Context, sents []document.Sentence) ([]document.TranslatedSentence, error) {
	if len(sents) == 0 {
		return []document.TranslatedSentence{}, nil
	}

	batches := partition(sents, b.cfg.BatchSize)
	b.logger.Info("dispatching translation batches",
		zap.Int("sentences", len(sents)),
		zap.Int("batches", len(batches)),
		zap.Int("batch_size", b.cfg.BatchSize),
		zap.String("service", b.svc.Name()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		index int
		texts []string
		err   error
	}

	results := make(chan outcome, len(batches))
	sem := make(chan struct{}, b.cfg.Parallelism)

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func(index int, batch []string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				results <- outcome{index: index, err: ctx.Err()}
				return
			}
			texts, err := b.translateBatch(ctx, index, batch)
			results <- outcome{index: index, texts: texts, err: err}
		}(i, batch)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	translated := make([][]string, len(batches))
	var firstErr error
	for oc := range results {
		if oc.err != nil {
			if firstErr == nil {
				firstErr = oc.err
				cancel() // abandon remaining batches
			}
			continue
		}
		translated[oc.index] = oc.texts
	}
	if firstErr != nil {
		return nil, firstErr
	}

	// Reassemble in original order regardless of completion order.
	out := make([]document.TranslatedSentence, 0, len(sents))
	pos := 0
	for _, texts := range translated {
		for _, text := range texts {
			out = append(out, document.TranslatedSentence{Seq: sents[pos].Seq, Text: text})
			pos++
		}
	}
	return out, nil
}

// translateBatch runs one batch with a per-attempt timeout and a single
// retry on transport failure. A count mismatch is a contract violation
// and fails immediately, without retry.
func (b *Batcher) translateBatch(ctx context.Context, index int, batch []string) ([]string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			b.logger.Warn("retrying translation batch",
				zap.Int("batch", index), zap.Error(lastErr))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
		texts, err := b.svc.TranslateBatch(attemptCtx, batch)
		cancel()

		if err == nil {
			if len(texts) != len(batch) {
				return nil, &document.TranslationError{
					Batch:  index,
					Reason: fmt.Sprintf("service returned %d translations for %d sentences", len(texts), len(batch)),
				}
			}
			return texts, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			// The run was already abandoned; do not retry.
			break
		}
	}
	return nil, &document.TranslationError{Batch: index, Reason: "service failed after retry", Err: lastErr}
}

// partition splits sentences into text batches of at most size each,
// preserving order.
func partition(sents []document.Sentence, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(sents); start += size {
		end := start + size
		if end > len(sents) {
			end = len(sents)
		}
		batch := make([]string, 0, end-start)
		for _, s := range sents[start:end] {
			batch = append(batch, s.Text)
		}
		batches = append(batches, batch)
	}
	return batches
}
