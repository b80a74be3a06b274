// Package llm selects and constructs the language-model client for a run.
package llm

import (
	"errors"
	"fmt"
	"strings"

	"browser-runner/internal/application/port/output"
	"browser-runner/internal/infrastructure/env"
	"browser-runner/internal/infrastructure/llm/anthropicclient"
	"browser-runner/internal/infrastructure/llm/openaiclient"
)

// ErrMissingCredential is returned when the selected provider's API key is
// not present in the environment.
var ErrMissingCredential = errors.New("missing provider credential")

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	defaultAnthropicModel = "claude-3-5-sonnet-20240620"
	defaultOpenAIModel    = "gpt-4o"

	// Applied only on the OpenAI path; Anthropic gets no substituted
	// default and a nil temperature falls through to the provider.
	defaultOpenAITemperature = 0.2
)

type Params struct {
	Provider    string
	Model       string
	Temperature *float64
	BaseURL     string
	Logger      output.LoggerPort
}

// New builds the client for one run. Provider matching is case-insensitive
// and anything other than "anthropic" (including empty) selects OpenAI.
func New(params Params, cfg *env.Config) (output.LLMPort, error) {
	provider := strings.ToLower(strings.TrimSpace(params.Provider))

	if provider == ProviderAnthropic {
		return newAnthropic(params, cfg)
	}
	return newOpenAI(params, cfg)
}

func newAnthropic(params Params, cfg *env.Config) (output.LLMPort, error) {
	clientCfg, err := resolveAnthropic(params, cfg)
	if err != nil {
		return nil, err
	}
	return anthropicclient.New(clientCfg)
}

func newOpenAI(params Params, cfg *env.Config) (output.LLMPort, error) {
	clientCfg, err := resolveOpenAI(params, cfg)
	if err != nil {
		return nil, err
	}
	return openaiclient.New(clientCfg), nil
}

func resolveAnthropic(params Params, cfg *env.Config) (anthropicclient.Config, error) {
	if cfg.AnthropicAPIKey == "" {
		return anthropicclient.Config{}, fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrMissingCredential)
	}

	model := params.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = cfg.AnthropicBaseURL
	}

	return anthropicclient.Config{
		APIKey:      cfg.AnthropicAPIKey,
		Model:       model,
		BaseURL:     baseURL,
		Temperature: params.Temperature,
		Logger:      params.Logger,
	}, nil
}

func resolveOpenAI(params Params, cfg *env.Config) (openaiclient.Config, error) {
	if cfg.OpenAIAPIKey == "" {
		return openaiclient.Config{}, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingCredential)
	}

	model := params.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	// Request field wins, then OPENAI_BASE_URL, then the historical
	// OPENAI_ENDPOINT alias, then the provider default.
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = cfg.OpenAIBaseURL
	}
	if baseURL == "" {
		baseURL = cfg.OpenAIEndpoint
	}

	temperature := defaultOpenAITemperature
	if params.Temperature != nil {
		temperature = *params.Temperature
	}

	return openaiclient.Config{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       model,
		BaseURL:     baseURL,
		Temperature: float32(temperature),
		Logger:      params.Logger,
	}, nil
}
