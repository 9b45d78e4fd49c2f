package llmprovider

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"multi-agent-chat/config"
	"multi-agent-chat/pkg/gemini"
)

const (
	deepseekBaseURL = "https://api.deepseek.com/v1"
	qwenBaseURL     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
)

// InitializeProviders creates Provider instances from config.LLMConfig
// Returns providers sorted by priority (ascending) with disabled providers filtered out
// Skips providers that fail to initialize instead of failing the entire service
func InitializeProviders(cfg *config.LLMConfig) ([]Provider, []error) {
	if cfg == nil {
		return nil, []error{fmt.Errorf("LLM config is nil")}
	}

	var enabledProviders []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabledProviders = append(enabledProviders, p)
		}
	}

	if len(enabledProviders) == 0 {
		return nil, []error{ErrNoProvidersConfigured}
	}

	sort.Slice(enabledProviders, func(i, j int) bool {
		return enabledProviders[i].Priority < enabledProviders[j].Priority
	})

	// Build provider instances - skip failed ones instead of failing entirely
	var providers []Provider
	var initErrors []error

	for _, p := range enabledProviders {
		provider, err := createProvider(p)
		if err != nil {
			initErrors = append(initErrors, fmt.Errorf("failed to initialize provider %s (priority %d): %w", p.Name, p.Priority, err))
			continue
		}
		providers = append(providers, provider)
	}

	return providers, initErrors
}

// ManagerConfig converts the string durations of config.LLMConfig.
func ManagerConfig(cfg *config.LLMConfig) (*Config, error) {
	out := &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
	}

	var err error
	if out.RetryDelay, err = parseDuration(cfg.RetryDelay); err != nil {
		return nil, fmt.Errorf("llm.retry_delay: %w", err)
	}
	if out.MaxTotalTimeout, err = parseDuration(cfg.MaxTotalTimeout); err != nil {
		return nil, fmt.Errorf("llm.max_total_timeout: %w", err)
	}
	if out.RetryAttempts <= 0 {
		out.RetryAttempts = 1
	}
	return out, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider %s: model is required", cfg.Name)
	}

	switch strings.ToLower(cfg.Name) {
	case "openai":
		return NewOpenAIAdapter("openai", cfg.APIKey, cfg.BaseURL, cfg.Model), nil

	case "deepseek":
		return NewOpenAIAdapter("deepseek", cfg.APIKey, orDefault(cfg.BaseURL, deepseekBaseURL), cfg.Model), nil

	case "qwen", "alibaba":
		return NewOpenAIAdapter("qwen", cfg.APIKey, orDefault(cfg.BaseURL, qwenBaseURL), cfg.Model), nil

	case "anthropic", "claude":
		return NewAnthropicAdapter(cfg.APIKey, cfg.BaseURL, cfg.Model), nil

	case "gemini":
		timeout, err := parseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("provider %s: invalid timeout: %w", cfg.Name, err)
		}
		client, err := gemini.New(gemini.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			APIURL:  cfg.BaseURL,
			Timeout: timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
