package common

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig  `toml:"logging"`
	Gemini      GeminiConfig   `toml:"gemini"`
	Claude      ClaudeConfig   `toml:"claude"`
	LLM         LLMConfig      `toml:"llm"`
	Catalog     CatalogConfig  `toml:"catalog"`
	Captions    CaptionsConfig `toml:"captions"`
	Analysis    AnalysisConfig `toml:"analysis"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`                                       // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                  // Time format for logs (default: "15:04:05")
	FileName   string   `toml:"file_name"`                                    // Log file name inside ./logs (default: "salecaption.log")
}

// GeminiConfig contains Google Gemini API configuration for vision and caption calls
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`                              // default: "gemini-2.5-flash"
	Timeout     string  `toml:"timeout" validate:"omitempty"`       // per-call timeout (default: "2m")
	RateLimit   string  `toml:"rate_limit" validate:"omitempty"`    // minimum spacing between calls (default: "4s" for 15 RPM)
	Temperature float32 `toml:"temperature" validate:"gte=0,lte=2"` // default: 0.7
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`                              // default: "claude-haiku-4-5"
	MaxTokens   int     `toml:"max_tokens" validate:"gte=256"`      // default: 2048
	Timeout     string  `toml:"timeout"`                            // default: "2m"
	RateLimit   string  `toml:"rate_limit"`                         // default: "1s"
	Temperature float32 `toml:"temperature" validate:"gte=0,lte=1"` // default: 0.7
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig selects the provider and models for each pipeline stage.
// Empty models fall back to the default provider's configured model.
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=gemini claude"`
	VisionModel     string      `toml:"vision_model"`
	CaptionModel    string      `toml:"caption_model"`
	MaxRetries      int         `toml:"max_retries" validate:"gte=0,lte=10"`
}

// CatalogConfig points at custom store definition documents (JSON, YAML or TOML)
type CatalogConfig struct {
	CustomFiles  []string `toml:"custom_files"`
	DefaultStore string   `toml:"default_store"` // store key used when detection fails (default: first catalog store)
}

// CaptionsConfig holds caption generation preferences
type CaptionsConfig struct {
	Tone string `toml:"tone"` // tone value or label (default: "Simple")
}

// AnalysisConfig bounds media analysis
type AnalysisConfig struct {
	MaxFrames    int   `toml:"max_frames" validate:"gte=1"`     // frames considered per video (default: 12)
	MaxFileBytes int64 `toml:"max_file_bytes" validate:"gte=1"` // largest accepted upload (default: 20 MB)
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
			FileName:   "salecaption.log",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			Timeout:     "2m",
			RateLimit:   "4s", // 15 RPM free tier
			Temperature: 0.7,
		},
		Claude: ClaudeConfig{
			Model:       "claude-haiku-4-5",
			MaxTokens:   2048,
			Timeout:     "2m",
			RateLimit:   "1s",
			Temperature: 0.7,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
			MaxRetries:      3,
		},
		Captions: CaptionsConfig{
			Tone: "Simple",
		},
		Analysis: AnalysisConfig{
			MaxFrames:    12,
			MaxFileBytes: 20 * 1024 * 1024,
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> .env -> env
// Later files override earlier files. CLI flags are applied afterwards with ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// .env never overrides variables already present in the process environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SALECAPTION_ENV"); env != "" {
		config.Environment = env
	}

	// Logging configuration
	if level := os.Getenv("SALECAPTION_LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}
	if output := os.Getenv("SALECAPTION_LOG_OUTPUT"); output != "" {
		config.Logging.Output = splitList(output)
	}

	// Gemini configuration
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("SALECAPTION_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey // SALECAPTION_ prefix takes priority
	}
	if model := os.Getenv("SALECAPTION_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if timeout := os.Getenv("SALECAPTION_GEMINI_TIMEOUT"); timeout != "" {
		config.Gemini.Timeout = timeout
	}
	if rateLimit := os.Getenv("SALECAPTION_GEMINI_RATE_LIMIT"); rateLimit != "" {
		config.Gemini.RateLimit = rateLimit
	}
	if temperature := os.Getenv("SALECAPTION_GEMINI_TEMPERATURE"); temperature != "" {
		if t, err := strconv.ParseFloat(temperature, 32); err == nil {
			config.Gemini.Temperature = float32(t)
		}
	}

	// Claude configuration
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if apiKey := os.Getenv("SALECAPTION_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if model := os.Getenv("SALECAPTION_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if maxTokens := os.Getenv("SALECAPTION_CLAUDE_MAX_TOKENS"); maxTokens != "" {
		if mt, err := strconv.Atoi(maxTokens); err == nil {
			config.Claude.MaxTokens = mt
		}
	}
	if timeout := os.Getenv("SALECAPTION_CLAUDE_TIMEOUT"); timeout != "" {
		config.Claude.Timeout = timeout
	}
	if rateLimit := os.Getenv("SALECAPTION_CLAUDE_RATE_LIMIT"); rateLimit != "" {
		config.Claude.RateLimit = rateLimit
	}

	// LLM configuration
	if provider := os.Getenv("SALECAPTION_LLM_DEFAULT_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(strings.ToLower(provider))
	}
	if model := os.Getenv("SALECAPTION_LLM_VISION_MODEL"); model != "" {
		config.LLM.VisionModel = model
	}
	if model := os.Getenv("SALECAPTION_LLM_CAPTION_MODEL"); model != "" {
		config.LLM.CaptionModel = model
	}

	// Catalog configuration
	if files := os.Getenv("SALECAPTION_CATALOG_CUSTOM_FILES"); files != "" {
		config.Catalog.CustomFiles = splitList(files)
	}
	if store := os.Getenv("SALECAPTION_CATALOG_DEFAULT_STORE"); store != "" {
		config.Catalog.DefaultStore = store
	}

	// Captions configuration
	if tone := os.Getenv("SALECAPTION_CAPTIONS_TONE"); tone != "" {
		config.Captions.Tone = tone
	}
}

// FlagOverrides carries command-line values; zero values leave the config untouched.
type FlagOverrides struct {
	Tone         string
	DefaultStore string
	Provider     string
	LogLevel     string
	CustomFiles  []string
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, flags FlagOverrides) {
	if flags.Tone != "" {
		config.Captions.Tone = flags.Tone
	}
	if flags.DefaultStore != "" {
		config.Catalog.DefaultStore = flags.DefaultStore
	}
	if flags.Provider != "" {
		config.LLM.DefaultProvider = LLMProvider(strings.ToLower(flags.Provider))
	}
	if flags.LogLevel != "" {
		config.Logging.Level = strings.ToLower(flags.LogLevel)
	}
	if len(flags.CustomFiles) > 0 {
		config.Catalog.CustomFiles = append(config.Catalog.CustomFiles, flags.CustomFiles...)
	}
}

// Validate checks field constraints and duration strings
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for name, value := range map[string]string{
		"gemini.timeout":    c.Gemini.Timeout,
		"gemini.rate_limit": c.Gemini.RateLimit,
		"claude.timeout":    c.Claude.Timeout,
		"claude.rate_limit": c.Claude.RateLimit,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid configuration: %s %q: %w", name, value, err)
		}
	}
	return nil
}

// ResolveAPIKey resolves an API key by name with environment variable priority
// Resolution order: environment variables → config fallback → error
func ResolveAPIKey(ctx context.Context, name string, configFallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"gemini_api_key":    {"SALECAPTION_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"anthropic_api_key": {"SALECAPTION_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ParseDurationOr parses a duration string, returning fallback when empty or invalid
func ParseDurationOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
