// Package translator provides the translation services the pipeline
// dispatches sentence batches to: Google Cloud Translate, a local Ollama
// instance, or any OpenAI-compatible endpoint. Every service obeys the
// same contract: a batch of source sentences in, the same number of
// translations out, in the same order, with no state carried between
// batches.
package translator

import (
	"context"
	"time"
)

// ServiceConfig holds the connection settings shared by all services.
type ServiceConfig struct {
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	APIKey      string        `mapstructure:"api_key" json:"api_key"`
	Model       string        `mapstructure:"model" json:"model"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	// Timeout bounds one HTTP request to an LLM service; zero means the
	// service default.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
	SourceLang  string        `mapstructure:"source_lang" json:"source_lang"`
	TargetLang  string        `mapstructure:"target_lang" json:"target_lang"`
}

// withDefaults fills the language pair the tool exists for.
func (c ServiceConfig) withDefaults() ServiceConfig {
	if c.SourceLang == "" {
		c.SourceLang = "es"
	}
	if c.TargetLang == "" {
		c.TargetLang = "en"
	}
	return c
}

// Service is a translation capability. TranslateBatch must return exactly
// one translation per input sentence, in input order; the batcher treats
// any count mismatch as a fatal contract violation.
type Service interface {
	Name() string
	TranslateBatch(ctx context.Context, batch []string) ([]string, error)
	IsAvailable(ctx context.Context) error
}
