package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Streaming
	Stream       StreamConfig
	SessionStore SessionStoreConfig
	RateLimit    RateLimitConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Per-family agent tuning, keyed by family name
	Agents map[string]AgentConfig
}

type EnvironmentConfig struct {
	Name string
	// Timezone resolves relative dates in agent prompts
	Timezone string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// StreamConfig holds the server-side stream timers.
type StreamConfig struct {
	HeartbeatInterval time.Duration
	IdleTimeout       time.Duration
	OverallTimeout    time.Duration
}

// SessionStoreConfig selects and sizes the conversation history store.
type SessionStoreConfig struct {
	Driver           string // memory | sqlite
	Path             string
	MaxConversations int
	HistoryTurns     int
}

type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	Burst          int
}

// AgentConfig tunes the completion parameters of one agent family.
type AgentConfig struct {
	Temperature float64
	MaxTokens   int
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
)

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.Environment.Timezone = viper.GetString("environment.timezone")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Streaming
	cfg.Stream.HeartbeatInterval = viper.GetDuration("stream.heartbeat_interval")
	cfg.Stream.IdleTimeout = viper.GetDuration("stream.idle_timeout")
	cfg.Stream.OverallTimeout = viper.GetDuration("stream.overall_timeout")

	cfg.SessionStore.Driver = strings.ToLower(viper.GetString("session_store.driver"))
	cfg.SessionStore.Path = viper.GetString("session_store.path")
	cfg.SessionStore.MaxConversations = viper.GetInt("session_store.max_conversations")
	cfg.SessionStore.HistoryTurns = viper.GetInt("session_store.history_turns")

	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.Burst = viper.GetInt("rate_limit.burst")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, providerFromMap(providerMap))
				}
			}
		}
	}

	// Agents
	cfg.Agents = make(map[string]AgentConfig)
	for family := range viper.GetStringMap("agents") {
		cfg.Agents[family] = AgentConfig{
			Temperature: viper.GetFloat64("agents." + family + ".temperature"),
			MaxTokens:   viper.GetInt("agents." + family + ".max_tokens"),
		}
	}

	if err := validateStreamConfig(&cfg.Stream); err != nil {
		return nil, err
	}
	if err := validateSessionStoreConfig(&cfg.SessionStore); err != nil {
		return nil, err
	}
	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, fmt.Errorf("invalid llm config - please check llm.providers in config.yaml: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("environment.timezone", "UTC")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Stream timers
	viper.SetDefault("stream.heartbeat_interval", "15s")
	viper.SetDefault("stream.idle_timeout", "90s")
	viper.SetDefault("stream.overall_timeout", "180s")

	viper.SetDefault("session_store.driver", StoreDriverMemory)
	viper.SetDefault("session_store.path", "data/conversations.db")
	viper.SetDefault("session_store.max_conversations", 10000)
	viper.SetDefault("session_store.history_turns", 20)

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 30)
	viper.SetDefault("rate_limit.burst", 0)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

func providerFromMap(m map[string]interface{}) ProviderConfig {
	return ProviderConfig{
		Name:     getStringFromMap(m, "name"),
		Enabled:  getBoolFromMap(m, "enabled"),
		Priority: getIntFromMap(m, "priority"),
		APIKey:   expandEnvVar(getStringFromMap(m, "api_key")),
		BaseURL:  getStringFromMap(m, "base_url"),
		Model:    getStringFromMap(m, "model"),
		Timeout:  getStringFromMap(m, "timeout"),
	}
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

func validateStreamConfig(cfg *StreamConfig) error {
	if cfg.HeartbeatInterval <= 0 || cfg.IdleTimeout <= 0 || cfg.OverallTimeout <= 0 {
		return fmt.Errorf("stream timers must be positive")
	}
	if cfg.HeartbeatInterval >= cfg.IdleTimeout {
		return fmt.Errorf("stream.heartbeat_interval (%s) must be shorter than stream.idle_timeout (%s)",
			cfg.HeartbeatInterval, cfg.IdleTimeout)
	}
	if cfg.IdleTimeout > cfg.OverallTimeout {
		return fmt.Errorf("stream.idle_timeout (%s) must not exceed stream.overall_timeout (%s)",
			cfg.IdleTimeout, cfg.OverallTimeout)
	}
	return nil
}

func validateSessionStoreConfig(cfg *SessionStoreConfig) error {
	switch cfg.Driver {
	case StoreDriverMemory:
		if cfg.MaxConversations <= 0 {
			return fmt.Errorf("session_store.max_conversations must be positive")
		}
	case StoreDriverSQLite:
		if cfg.Path == "" {
			return fmt.Errorf("session_store.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown session_store.driver %q", cfg.Driver)
	}
	if cfg.HistoryTurns < 0 {
		return fmt.Errorf("session_store.history_turns must not be negative")
	}
	return nil
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
