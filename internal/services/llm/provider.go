package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ternarybob/salecaption/internal/common"
	"github.com/ternarybob/salecaption/internal/interfaces"
)

// ProviderType represents the AI provider type
type ProviderType string

const (
	// ProviderGemini uses Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderClaude uses Anthropic Claude API
	ProviderClaude ProviderType = "claude"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// claudeImageTypes are the media types the Messages API accepts for image blocks.
var claudeImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ContentRequest represents a provider-agnostic content generation request
type ContentRequest struct {
	Prompt      string
	Media       *interfaces.Media // optional image sent before the prompt
	Model       string            // may carry a provider prefix; empty uses the default provider
	Temperature float32
	MaxTokens   int
}

// ContentResponse represents a provider-agnostic content generation response
type ContentResponse struct {
	Text     string
	Provider ProviderType
	Model    string
}

// ProviderFactory creates provider clients lazily and routes requests by model name.
// Calls to each provider are paced by a rate limiter and bounded by a timeout.
type ProviderFactory struct {
	geminiConfig *common.GeminiConfig
	claudeConfig *common.ClaudeConfig
	llmConfig    *common.LLMConfig
	logger       arbor.ILogger
	retry        *RetryConfig

	mu            sync.Mutex
	geminiClient  *genai.Client
	claudeClient  anthropic.Client
	claudeReady   bool
	geminiLimiter *rate.Limiter
	claudeLimiter *rate.Limiter
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(config *common.Config, logger arbor.ILogger) *ProviderFactory {
	return &ProviderFactory{
		geminiConfig:  &config.Gemini,
		claudeConfig:  &config.Claude,
		llmConfig:     &config.LLM,
		logger:        logger,
		retry:         NewRetryConfig(config.LLM.MaxRetries),
		geminiLimiter: newLimiter(config.Gemini.RateLimit, 4*time.Second),
		claudeLimiter: newLimiter(config.Claude.RateLimit, time.Second),
	}
}

func newLimiter(spacing string, fallback time.Duration) *rate.Limiter {
	d := common.ParseDurationOr(spacing, fallback)
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// DetectProvider determines the provider type from a model string.
// Model strings can be:
// - "claude-haiku-4-5" -> Claude
// - "claude/claude-haiku-4-5" or "anthropic/..." -> Claude (with prefix)
// - "gemini-2.5-flash" -> Gemini
// - "gemini/gemini-2.5-flash" or "google/..." -> Gemini (with prefix)
// - Empty string -> uses default provider from config
func (f *ProviderFactory) DetectProvider(model string) ProviderType {
	if model == "" {
		return ProviderType(f.llmConfig.DefaultProvider)
	}

	model = strings.ToLower(model)

	if strings.HasPrefix(model, "claude/") || strings.HasPrefix(model, "anthropic/") {
		return ProviderClaude
	}
	if strings.HasPrefix(model, "gemini/") || strings.HasPrefix(model, "google/") {
		return ProviderGemini
	}

	if strings.HasPrefix(model, "claude-") {
		return ProviderClaude
	}
	if strings.HasPrefix(model, "gemini-") {
		return ProviderGemini
	}

	return ProviderType(f.llmConfig.DefaultProvider)
}

// NormalizeModel removes provider prefix from model name if present
func (f *ProviderFactory) NormalizeModel(model string) string {
	prefixes := []string{"claude/", "anthropic/", "gemini/", "google/"}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToLower(model), prefix) {
			return model[len(prefix):]
		}
	}
	return model
}

// GetDefaultModel returns the default model for a provider
func (f *ProviderFactory) GetDefaultModel(provider ProviderType) string {
	switch provider {
	case ProviderClaude:
		return f.claudeConfig.Model
	default:
		return f.geminiConfig.Model
	}
}

// GetGeminiClient returns a Gemini client, creating one if necessary
func (f *ProviderFactory) GetGeminiClient(ctx context.Context) (*genai.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.geminiClient != nil {
		return f.geminiClient, nil
	}

	apiKey, err := common.ResolveAPIKey(ctx, "gemini_api_key", f.geminiConfig.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Gemini API key: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	f.geminiClient = client
	return client, nil
}

// GetClaudeClient returns a Claude client, creating one if necessary
func (f *ProviderFactory) GetClaudeClient(ctx context.Context) (anthropic.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claudeReady {
		return f.claudeClient, nil
	}

	apiKey, err := common.ResolveAPIKey(ctx, "anthropic_api_key", f.claudeConfig.APIKey)
	if err != nil {
		return anthropic.Client{}, fmt.Errorf("failed to resolve Anthropic API key: %w", err)
	}

	f.claudeClient = anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	f.claudeReady = true
	return f.claudeClient, nil
}

// GenerateContent generates content using the appropriate provider based on model
func (f *ProviderFactory) GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error) {
	provider := f.DetectProvider(request.Model)
	model := f.NormalizeModel(request.Model)

	f.logger.Debug().
		Str("provider", string(provider)).
		Str("model", model).
		Bool("has_media", request.Media != nil).
		Msg("Generating content with provider")

	switch provider {
	case ProviderClaude:
		return f.generateWithClaude(ctx, request, model)
	default:
		return f.generateWithGemini(ctx, request, model)
	}
}

// generateWithClaude generates content using Claude API
func (f *ProviderFactory) generateWithClaude(ctx context.Context, request *ContentRequest, model string) (*ContentResponse, error) {
	client, err := f.GetClaudeClient(ctx)
	if err != nil {
		return nil, err
	}

	if model == "" {
		model = f.claudeConfig.Model
	}

	var blocks []anthropic.ContentBlockParamUnion
	if request.Media != nil {
		if !claudeImageTypes[request.Media.MIMEType] {
			return nil, fmt.Errorf("Claude does not accept media type %q", request.Media.MIMEType)
		}
		blocks = append(blocks, anthropic.NewImageBlockBase64(request.Media.MIMEType, base64.StdEncoding.EncodeToString(request.Media.Data)))
	}
	blocks = append(blocks, anthropic.NewTextBlock(request.Prompt))

	maxTokens := request.MaxTokens
	if maxTokens <= 0 {
		maxTokens = f.claudeConfig.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}

	temp := request.Temperature
	if temp <= 0 {
		temp = f.claudeConfig.Temperature
	}
	if temp > 0 {
		params.Temperature = anthropic.Float(float64(temp))
	}

	timeout := common.ParseDurationOr(f.claudeConfig.Timeout, 2*time.Minute)

	var resp *anthropic.Message
	err = withRetry(ctx, f.retry, f.logger, "Claude", func() error {
		if err := f.claudeLimiter.Wait(ctx); err != nil {
			return err
		}
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		var callErr error
		resp, callErr = client.Messages.New(callCtx, params)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("Claude API call failed after %d retries: %w", f.retry.MaxRetries, err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return nil, fmt.Errorf("Claude: %w", ErrEmptyResponse)
	}

	return &ContentResponse{
		Text:     text.String(),
		Provider: ProviderClaude,
		Model:    model,
	}, nil
}

// generateWithGemini generates content using Gemini API
func (f *ProviderFactory) generateWithGemini(ctx context.Context, request *ContentRequest, model string) (*ContentResponse, error) {
	client, err := f.GetGeminiClient(ctx)
	if err != nil {
		return nil, err
	}

	if model == "" {
		model = f.geminiConfig.Model
	}

	var parts []*genai.Part
	if request.Media != nil {
		parts = append(parts, genai.NewPartFromBytes(request.Media.Data, request.Media.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(request.Prompt))
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	temp := request.Temperature
	if temp <= 0 {
		temp = f.geminiConfig.Temperature
	}
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temp),
	}

	timeout := common.ParseDurationOr(f.geminiConfig.Timeout, 2*time.Minute)

	var resp *genai.GenerateContentResponse
	err = withRetry(ctx, f.retry, f.logger, "Gemini", func() error {
		if err := f.geminiLimiter.Wait(ctx); err != nil {
			return err
		}
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		var callErr error
		resp, callErr = client.Models.GenerateContent(callCtx, model, contents, config)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini API call failed after %d retries: %w", f.retry.MaxRetries, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("Gemini: %w", ErrEmptyResponse)
	}

	responseText := resp.Text()
	if responseText == "" {
		return nil, fmt.Errorf("Gemini: %w", ErrEmptyResponse)
	}

	return &ContentResponse{
		Text:     responseText,
		Provider: ProviderGemini,
		Model:    model,
	}, nil
}

// Close releases provider clients
func (f *ProviderFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.geminiClient = nil
	f.claudeClient = anthropic.Client{}
	f.claudeReady = false
	return nil
}
