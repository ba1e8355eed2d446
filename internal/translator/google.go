package translator

import (
	"context"
	"fmt"
	"sync"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService translates batches through the Cloud Translation API,
// which accepts a whole batch of strings per call. The API client is an
// owned resource created lazily on the first batch; the owner must call
// Close when the run is finished.
type GoogleService struct {
	cfg    ServiceConfig
	source language.Tag
	target language.Tag

	mu     sync.Mutex
	client *translate.Client
}

// NewGoogleService builds a Google Translate service from cfg. The
// language pair defaults to es→en.
func NewGoogleService(cfg ServiceConfig) (*GoogleService, error) {
	cfg = cfg.withDefaults()
	source, err := language.Parse(cfg.SourceLang)
	if err != nil {
		return nil, fmt.Errorf("invalid source language %q: %w", cfg.SourceLang, err)
	}
	target, err := language.Parse(cfg.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", cfg.TargetLang, err)
	}
	return &GoogleService{cfg: cfg, source: source, target: target}, nil
}

func (s *GoogleService) Name() string {
	return "google"
}

// getClient creates the API client on first use.
func (s *GoogleService) getClient(ctx context.Context) (*translate.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	opts := []option.ClientOption{}
	if s.cfg.Credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.cfg.Credentials))
	}
	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translate client: %w", err)
	}
	s.client = client
	return client, nil
}

func (s *GoogleService) TranslateBatch(ctx context.Context, batch []string) ([]string, error) {
	if len(batch) == 0 {
		return []string{}, nil
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	translations, err := client.Translate(ctx, batch, s.target, &translate.Options{
		Source: s.source,
		Format: translate.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}

	out := make([]string, 0, len(translations))
	for _, tr := range translations {
		out = append(out, tr.Text)
	}
	return out, nil
}

func (s *GoogleService) IsAvailable(ctx context.Context) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}
	_, err = client.SupportedLanguages(ctx, s.source)
	return err
}

// Close releases the API client if it was ever created.
func (s *GoogleService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}
