package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/salecaption/internal/common"
	"github.com/ternarybob/salecaption/internal/interfaces"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error) {
	args := m.Called(ctx, request)
	if resp, ok := args.Get(0).(*ContentResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestFactory(provider common.LLMProvider) *ProviderFactory {
	cfg := common.NewDefaultConfig()
	cfg.LLM.DefaultProvider = provider
	return NewProviderFactory(cfg, arbor.NewLogger())
}

func TestDetectProvider(t *testing.T) {
	f := newTestFactory(common.LLMProviderClaude)

	tests := []struct {
		model    string
		expected ProviderType
	}{
		{"", ProviderClaude},
		{"claude-haiku-4-5", ProviderClaude},
		{"anthropic/claude-sonnet-4-5", ProviderClaude},
		{"gemini-2.5-flash", ProviderGemini},
		{"Google/gemini-2.5-pro", ProviderGemini},
		{"gemini/gemini-2.5-flash", ProviderGemini},
		{"some-other-model", ProviderClaude},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.DetectProvider(tt.model))
		})
	}
}

func TestNormalizeModel(t *testing.T) {
	f := newTestFactory(common.LLMProviderGemini)

	assert.Equal(t, "claude-haiku-4-5", f.NormalizeModel("claude/claude-haiku-4-5"))
	assert.Equal(t, "gemini-2.5-flash", f.NormalizeModel("Gemini/gemini-2.5-flash"))
	assert.Equal(t, "gemini-2.5-flash", f.NormalizeModel("gemini-2.5-flash"))
}

func TestGetDefaultModel(t *testing.T) {
	f := newTestFactory(common.LLMProviderGemini)

	assert.Equal(t, "gemini-2.5-flash", f.GetDefaultModel(ProviderGemini))
	assert.Equal(t, "claude-haiku-4-5", f.GetDefaultModel(ProviderClaude))
}

func TestVisionService_Describe(t *testing.T) {
	gen := new(mockGenerator)
	media := interfaces.Media{Name: "ad.png", MIMEType: "image/png", Data: []byte{1, 2, 3}}
	gen.On("GenerateContent", mock.Anything, mock.MatchedBy(func(r *ContentRequest) bool {
		return r.Prompt == "read it" && r.Media != nil && r.Media.Name == "ad.png" && r.Model == "claude/claude-haiku-4-5"
	})).Return(&ContentResponse{Text: "Product Name: apples"}, nil)

	svc := &VisionService{provider: gen, model: "claude/claude-haiku-4-5"}
	text, err := svc.Describe(context.Background(), "read it", media)

	require.NoError(t, err)
	assert.Equal(t, "Product Name: apples", text)
	gen.AssertExpectations(t)
}

func TestCaptionService_Generate(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("GenerateContent", mock.Anything, mock.MatchedBy(func(r *ContentRequest) bool {
		return r.Media == nil && r.Model == ""
	})).Return(nil, errors.New("boom")).Once()
	gen.On("GenerateContent", mock.Anything, mock.Anything).Return(&ContentResponse{Text: "caption"}, nil)

	svc := &CaptionService{provider: gen}

	_, err := svc.Generate(context.Background(), "prompt")
	assert.EqualError(t, err, "boom")

	text, err := svc.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "caption", text)
}

func TestNewServicesUseStageModels(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.LLM.VisionModel = "gemini-2.5-pro"
	cfg.LLM.CaptionModel = "claude-haiku-4-5"
	f := NewProviderFactory(cfg, arbor.NewLogger())

	assert.Equal(t, "gemini-2.5-pro", NewVisionService(f).model)
	assert.Equal(t, "claude-haiku-4-5", NewCaptionService(f).model)
}

func TestNewLimiter(t *testing.T) {
	assert.Equal(t, rate.Every(time.Second), newLimiter("1s", time.Minute).Limit())
	assert.Equal(t, rate.Every(time.Minute), newLimiter("bogus", time.Minute).Limit())
	assert.Equal(t, rate.Inf, newLimiter("0s", time.Second).Limit())
}
