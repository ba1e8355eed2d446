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
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/entrelineas/entrelineas/internal/translator"
)

var (
	serviceName    string
	model          string
	apiKey         string
	baseURL        string
	credentials    string
	serviceTimeout time.Duration
)

// registerServiceFlags adds the translation-service flags shared by the
// commands that invoke a service.
func registerServiceFlags(c *cobra.Command) {
	c.Flags().StringVar(&serviceName, "service", "ollama", "Translation service: google, ollama, or openai")
	c.Flags().StringVar(&model, "model", "", "Model name (ollama/openai services)")
	c.Flags().StringVar(&apiKey, "api-key", "", "API key (openai service)")
	c.Flags().StringVar(&baseURL, "base-url", "", "Service base URL (ollama/openai services)")
	c.Flags().StringVar(&credentials, "credentials", "", "Path to Google Cloud credentials file")
	c.Flags().DurationVar(&serviceTimeout, "service-timeout", 0, "HTTP timeout per service request (default 120s)")
}

// serviceConfig resolves service settings with flag > env/config > default
// precedence.
func serviceConfig() translator.ServiceConfig {
	cfg := translator.ServiceConfig{
		Credentials: credentials,
		APIKey:      apiKey,
		Model:       model,
		BaseURL:     baseURL,
		Timeout:     serviceTimeout,
	}
	if cfg.APIKey == "" {
		cfg.APIKey = viper.GetString("api_key")
	}
	if cfg.Credentials == "" {
		cfg.Credentials = viper.GetString("credentials")
	}
	if cfg.Model == "" {
		cfg.Model = viper.GetString("model")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = viper.GetString("base_url")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = viper.GetDuration("service_timeout")
	}
	return cfg
}

// The fallback helpers give every tuning flag env/config-file fallback:
// an explicitly set flag always wins, otherwise a configured value
// replaces the flag default.

func fallbackString(f *pflag.FlagSet, flag, key, cur string) string {
	if f.Changed(flag) || !viper.IsSet(key) {
		return cur
	}
	return viper.GetString(key)
}

func fallbackInt(f *pflag.FlagSet, flag, key string, cur int) int {
	if f.Changed(flag) || !viper.IsSet(key) {
		return cur
	}
	return viper.GetInt(key)
}

func fallbackDuration(f *pflag.FlagSet, flag, key string, cur time.Duration) time.Duration {
	if f.Changed(flag) || !viper.IsSet(key) {
		return cur
	}
	return viper.GetDuration(key)
}

func fallbackStringSlice(f *pflag.FlagSet, flag, key string, cur []string) []string {
	if f.Changed(flag) || !viper.IsSet(key) {
		return cur
	}
	return viper.GetStringSlice(key)
}

// buildService constructs the selected translation service.
func buildService(name string) (translator.Service, error) {
	cfg := serviceConfig()
	switch name {
	case "google":
		return translator.NewGoogleService(cfg)
	case "ollama":
		return translator.NewOllamaService(cfg), nil
	case "openai":
		return translator.NewOpenAIService(cfg), nil
	default:
		return nil, fmt.Errorf("unknown service %q (expected google, ollama, or openai)", name)
	}
}
