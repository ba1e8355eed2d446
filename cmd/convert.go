/*
Copyright © 2026 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/entrelineas/entrelineas/internal/batcher"
	"github.com/entrelineas/entrelineas/internal/logger"
	"github.com/entrelineas/entrelineas/internal/pipeline"
	"github.com/entrelineas/entrelineas/internal/render"
	"github.com/entrelineas/entrelineas/internal/segmenter"
	"github.com/entrelineas/entrelineas/internal/store"
)

var (
	inputFile  string
	outputFile string
	format     string
	title      string

	batchSize   int
	parallelism int
	timeout     time.Duration

	noCache          bool
	hyphenExceptions []string
	validateSample   int
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a Spanish PDF into a bilingual interlinear document",
	Long: `Extract the text of a Spanish PDF, segment it into sentences, translate
each sentence to English, and write the interlinear result.

The finished document is cached in the local SQLite database keyed by the
PDF's content fingerprint; converting the same file again returns the
cached document without contacting the translation service.

Output formats:
  text   interlinear plain text (default)
  json   the full document model`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == outputFile && outputFile != "" {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		flags := cmd.Flags()
		batchSize = fallbackInt(flags, "batch-size", "batch_size", batchSize)
		parallelism = fallbackInt(flags, "parallel", "parallelism", parallelism)
		timeout = fallbackDuration(flags, "timeout", "timeout", timeout)
		hyphenExceptions = fallbackStringSlice(flags, "hyphen-exceptions", "hyphen_exceptions", hyphenExceptions)
		validateSample = fallbackInt(flags, "validate-sample", "validate_sample", validateSample)

		pdfBytes, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		ctx := context.Background()
		log := logger.New(verbose)
		defer log.Sync() //nolint:errcheck

		tok, err := segmenter.Spanish()
		if err != nil {
			return err
		}

		svc, err := buildService(serviceName)
		if err != nil {
			return err
		}
		if closer, ok := svc.(io.Closer); ok {
			defer closer.Close()
		}

		var cache store.Cache
		var db *store.Store
		if !noCache && dbPath != "" {
			db, err = store.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
			cache = store.NewTiered(db)
		}

		pl, err := pipeline.New(pipeline.Params{
			Tokenizer: tok,
			Service:   svc,
			Cache:     cache,
			Logger:    log,
			Config: pipeline.Config{
				Batch: batcher.Config{
					BatchSize:   batchSize,
					Parallelism: parallelism,
					Timeout:     timeout,
				},
				HyphenExceptions: hyphenExceptions,
				ValidateSample:   validateSample,
			},
		})
		if err != nil {
			return err
		}

		doc, err := pl.Run(ctx, pdfBytes)
		if err != nil {
			return err
		}

		if db != nil {
			book := store.Book{
				Fingerprint:    doc.Fingerprint,
				ID:             uuid.New().String(),
				Title:          bookTitle(),
				OriginalFile:   filepath.Base(inputFile),
				TotalSentences: len(doc.Pairs),
				PageCount:      doc.PageCount,
			}
			if err := db.AddBook(ctx, book); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not register book: %v\n", err)
			}
		}

		out := os.Stdout
		if outputFile != "" {
			if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		switch format {
		case "json":
			err = render.JSON(out, doc)
		case "text":
			err = render.Text(out, doc)
		default:
			return fmt.Errorf("unknown format %q (expected text or json)", format)
		}
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Converted %d sentences across %d pages\n", len(doc.Pairs), doc.PageCount)
		return nil
	},
}

// bookTitle derives a library title from the flag or the input filename.
func bookTitle() string {
	if title != "" {
		return title
	}
	base := filepath.Base(inputFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input PDF file (required)")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	convertCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	convertCmd.Flags().StringVar(&title, "title", "", "Library title (default derived from filename)")

	convertCmd.Flags().IntVar(&batchSize, "batch-size", batcher.DefaultBatchSize, "Sentences per translation batch")
	convertCmd.Flags().IntVar(&parallelism, "parallel", batcher.DefaultParallelism, "Concurrent batches in flight")
	convertCmd.Flags().DurationVar(&timeout, "timeout", batcher.DefaultTimeout, "Per-batch translation timeout")

	convertCmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the document cache")
	convertCmd.Flags().StringSliceVar(&hyphenExceptions, "hyphen-exceptions", nil, "Compound-word prefixes that keep their hyphen when rejoined")
	convertCmd.Flags().IntVar(&validateSample, "validate-sample", 0, "Spot-check this many translations for target language (0 = off)")

	registerServiceFlags(convertCmd)

	_ = convertCmd.MarkFlagRequired("input")
}
