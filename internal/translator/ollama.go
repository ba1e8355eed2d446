package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultOllamaModel = "llama3.2"

	// defaultHTTPTimeout bounds one LLM request; generation on modest
	// hardware can legitimately take a couple of minutes.
	defaultHTTPTimeout = 120 * time.Second
)

// OllamaService translates through a local Ollama instance. Ollama has no
// batch endpoint, so a batch is translated sentence by sentence within a
// single TranslateBatch call, which keeps the one-in-one-out contract
// trivially true.
type OllamaService struct {
	cfg     ServiceConfig
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaService builds an Ollama service. Empty BaseURL, Model, and
// Timeout fall back to localhost, a small general model, and the default
// HTTP timeout.
func NewOllamaService(cfg ServiceConfig) *OllamaService {
	cfg = cfg.withDefaults()
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &OllamaService{
		cfg:     cfg,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *OllamaService) Name() string {
	return "ollama"
}

func (s *OllamaService) TranslateBatch(ctx context.Context, batch []string) ([]string, error) {
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

func (s *OllamaService) translateOne(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`Translate the following sentence from %s to %s.
Only respond with the translation, nothing else.

Sentence: %q

Translation:`, s.cfg.SourceLang, s.cfg.TargetLang, text)

	payload := map[string]interface{}{
		"model":  s.model,
		"prompt": prompt,
		"stream": false,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/api/generate", s.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var ollamaResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return Clean(ollamaResp.Response), nil
}

func (s *OllamaService) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/tags", s.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not available: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}
