package llmprovider_test

import (
	"errors"
	"testing"
	"time"

	"multi-agent-chat/config"
	"multi-agent-chat/pkg/llmprovider"
)

func TestInitializeProviders_OrderAndSkip(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "anthropic", Enabled: true, Priority: 3, APIKey: "k", Model: "claude-3-5-haiku-latest"},
			{Name: "gemini", Enabled: true, Priority: 1, APIKey: "k", Model: "gemini-2.5-flash", Timeout: "30s"},
			{Name: "openai", Enabled: true, Priority: 2, APIKey: "k", Model: "gpt-4o-mini"},
			{Name: "deepseek", Enabled: false, Priority: 4, APIKey: "k", Model: "deepseek-chat"},
			{Name: "qwen", Enabled: true, Priority: 5, Model: "qwen-plus"},
			{Name: "mystery", Enabled: true, Priority: 6, APIKey: "k", Model: "m"},
		},
	}

	providers, errs := llmprovider.InitializeProviders(cfg)

	want := []string{"gemini", "openai", "anthropic"}
	if len(providers) != len(want) {
		t.Fatalf("Expected %d providers, got %d", len(want), len(providers))
	}
	for i, name := range want {
		if providers[i].Name() != name {
			t.Errorf("provider %d: expected %s, got %s", i, name, providers[i].Name())
		}
	}
	// qwen without key and the unknown provider are skipped
	if len(errs) != 2 {
		t.Errorf("Expected 2 init errors, got %d: %v", len(errs), errs)
	}
}

func TestInitializeProviders_NoneEnabled(t *testing.T) {
	_, errs := llmprovider.InitializeProviders(&config.LLMConfig{
		Providers: []config.ProviderConfig{{Name: "gemini", APIKey: "k", Model: "m"}},
	})
	if len(errs) != 1 || !errors.Is(errs[0], llmprovider.ErrNoProvidersConfigured) {
		t.Fatalf("Expected ErrNoProvidersConfigured, got %v", errs)
	}
}

func TestManagerConfig(t *testing.T) {
	cfg, err := llmprovider.ManagerConfig(&config.LLMConfig{
		FallbackEnabled: true,
		RetryAttempts:   0,
		RetryDelay:      "250ms",
		MaxTotalTimeout: "1m",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RetryAttempts != 1 {
		t.Errorf("Expected at least one attempt, got %d", cfg.RetryAttempts)
	}
	if cfg.RetryDelay != 250*time.Millisecond || cfg.MaxTotalTimeout != time.Minute {
		t.Errorf("unexpected durations: %+v", cfg)
	}

	if _, err := llmprovider.ManagerConfig(&config.LLMConfig{RetryDelay: "soon"}); err == nil {
		t.Error("Expected error for invalid duration")
	}
}
