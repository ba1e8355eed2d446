package translator

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIService translates through any OpenAI-compatible chat endpoint
// (OpenAI itself, OpenRouter, vLLM, ...). Like Ollama, sentences within a
// batch are translated one by one so the response count always matches.
type OpenAIService struct {
	cfg    ServiceConfig
	model  string
	client *openai.Client
}

// NewOpenAIService builds an OpenAI-compatible service. BaseURL may point
// at any compatible gateway; Model defaults to a small, cheap model.
func NewOpenAIService(cfg ServiceConfig) *OpenAIService {
	cfg = cfg.withDefaults()
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIService{
		cfg:    cfg,
		model:  model,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (s *OpenAIService) Name() string {
	return "openai"
}

func (s *OpenAIService) TranslateBatch(ctx context.Context, batch []string) ([]string, error) {
	out := make([]string, 0, len(batch))
	for _, sentence := range batch {
		translated, err := s.translateOne(ctx, sentence)
		if err != nil {
			return nil, err
		}
		out = append(out, translated)
	}
	return out, nil
}

func (s *OpenAIService) translateOne(ctx context.Context, text string) (string, error) {
	system := fmt.Sprintf(
		"You are a literary translator. Translate the user's sentence from %s to %s. Respond with the translation only.",
		s.cfg.SourceLang, s.cfg.TargetLang)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return Clean(resp.Choices[0].Message.Content), nil
}

func (s *OpenAIService) IsAvailable(ctx context.Context) error {
	if s.cfg.APIKey == "" {
		return fmt.Errorf("no API key configured")
	}
	_, err := s.client.ListModels(ctx)
	return err
}
