// Package pipeline wires the stages together: extract → normalize →
// segment → translate → assemble, with the document cache short-circuiting
// the whole chain on a fingerprint hit. Stages run strictly in sequence;
// only the batcher parallelizes internally.
package pipeline

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/entrelineas/entrelineas/internal/assembler"
	"github.com/entrelineas/entrelineas/internal/batcher"
	"github.com/entrelineas/entrelineas/internal/detector"
	"github.com/entrelineas/entrelineas/internal/document"
	"github.com/entrelineas/entrelineas/internal/extractor"
	"github.com/entrelineas/entrelineas/internal/normalizer"
	"github.com/entrelineas/entrelineas/internal/segmenter"
	"github.com/entrelineas/entrelineas/internal/store"
	"github.com/entrelineas/entrelineas/internal/translator"
	"github.com/entrelineas/entrelineas/internal/validator"
)

// Extractor produces per-page raw text from PDF bytes.
type Extractor interface {
	Extract(pdfBytes []byte) ([]document.RawPage, error)
}

type pdfExtractor struct{}

func (pdfExtractor) Extract(b []byte) ([]document.RawPage, error) {
	return extractor.Extract(b)
}

// Config tunes the pipeline.
type Config struct {
	Batch batcher.Config `mapstructure:"batch"`
	// HyphenExceptions lists compound-word prefixes whose hyphen
	// survives a line-break rejoin.
	HyphenExceptions []string `mapstructure:"hyphen_exceptions"`
	// ValidateSample is how many translations to spot-check for target
	// language; 0 disables validation.
	ValidateSample int `mapstructure:"validate_sample"`
	// SkipLanguageCheck disables the advisory source-language warning.
	SkipLanguageCheck bool `mapstructure:"skip_language_check"`
}

// Params collects the pipeline's collaborators.
type Params struct {
	Tokenizer segmenter.Tokenizer
	Service   translator.Service
	Cache     store.Cache // optional
	Extractor Extractor   // optional; defaults to the PDF extractor
	Logger    *zap.Logger // optional
	Config    Config
}

// Pipeline converts one PDF into one interlinear document per Run call.
// Safe for sequential reuse across documents.
type Pipeline struct {
	extract Extractor
	norm    *normalizer.Normalizer
	seg     *segmenter.Segmenter
	batch   *batcher.Batcher
	cache   store.Cache
	det     *detector.Detector
	val     *validator.Validator
	cfg     Config
	logger  *zap.Logger
}

// New assembles a Pipeline from p. Tokenizer and Service are required.
func New(p Params) (*Pipeline, error) {
	if p.Tokenizer == nil {
		return nil, fmt.Errorf("pipeline requires a sentence tokenizer")
	}
	if p.Service == nil {
		return nil, fmt.Errorf("pipeline requires a translation service")
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ext := p.Extractor
	if ext == nil {
		ext = pdfExtractor{}
	}

	pl := &Pipeline{
		extract: ext,
		norm:    normalizer.New(p.Config.HyphenExceptions),
		seg:     segmenter.New(p.Tokenizer),
		batch:   batcher.New(p.Service, p.Config.Batch, logger),
		cache:   p.Cache,
		cfg:     p.Config,
		logger:  logger,
	}
	if !p.Config.SkipLanguageCheck {
		pl.det = detector.New()
	}
	if p.Config.ValidateSample > 0 {
		pl.val = validator.New()
	}
	return pl, nil
}

// Run builds the interlinear document for pdfBytes. On a cache hit the
// stored document is returned untouched. Any stage failure aborts the run
// before the cache is written, so a cached document is always complete.
func (p *Pipeline) Run(ctx context.Context, pdfBytes []byte) (*document.InterlinearDocument, error) {
	log := p.logger.With(zap.String("run", uuid.NewString()[:8]))

	fingerprint := extractor.Fingerprint(pdfBytes)
	if p.cache != nil {
		doc, ok, err := p.cache.Get(ctx, fingerprint)
		if err != nil {
			log.Warn("cache read failed", zap.Error(err))
		} else if ok {
			log.Info("cache hit", zap.String("fingerprint", fingerprint[:12]))
			return doc, nil
		}
	}

	pages, err := p.extract.Extract(pdfBytes)
	if err != nil {
		return nil, err
	}
	log.Info("extracted pages", zap.Int("pages", len(pages)))

	blocks := p.norm.NormalizePages(pages)
	p.warnIfNotSpanish(log, blocks)

	sents := p.seg.Segment(blocks)
	log.Info("segmented sentences", zap.Int("sentences", len(sents)))

	trans, err := p.batch.Translate(ctx, sents)
	if err != nil {
		return nil, err
	}

	doc, err := assembler.Assemble(fingerprint, len(pages), sents, trans)
	if err != nil {
		return nil, err
	}

	if p.val != nil {
		for _, finding := range p.val.SampleDocument(doc, "en", p.cfg.ValidateSample) {
			log.Warn("translation language check", zap.Error(finding))
		}
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, fingerprint, doc); err != nil {
			// The document itself is sound; only memoization is lost.
			log.Warn("cache write failed", zap.Error(err))
		}
	}

	log.Info("document assembled",
		zap.Int("pairs", len(doc.Pairs)),
		zap.Int("pages", doc.PageCount))
	return doc, nil
}

// warnIfNotSpanish samples the first non-empty block and logs when it
// does not detect as Spanish. Advisory only.
func (p *Pipeline) warnIfNotSpanish(log *zap.Logger, blocks []document.NormalizedBlock) {
	if p.det == nil {
		return
	}
	for _, b := range blocks {
		if b.Text == "" {
			continue
		}
		sample := b.Text
		if len(sample) > 500 {
			cut := 500
			for cut > 0 && !utf8.RuneStart(sample[cut]) {
				cut--
			}
			sample = sample[:cut]
		}
		if !p.det.IsSpanish(sample) {
			iso, _ := p.det.DetectISO(sample)
			log.Warn("source text does not look Spanish", zap.String("detected", iso))
		}
		return
	}
}
