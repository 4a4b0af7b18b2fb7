package llm

import (
	"context"

	"github.com/ternarybob/salecaption/internal/interfaces"
)

// generator is the part of ProviderFactory the services need.
type generator interface {
	GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error)
}

// VisionService implements interfaces.VisionService on top of a provider factory.
type VisionService struct {
	provider generator
	model    string
}

// NewVisionService creates a vision service using the configured vision model,
// or the default provider's model when none is set.
func NewVisionService(factory *ProviderFactory) *VisionService {
	return &VisionService{provider: factory, model: factory.llmConfig.VisionModel}
}

// Describe sends the prompt with one image and returns the model's text.
func (s *VisionService) Describe(ctx context.Context, prompt string, media interfaces.Media) (string, error) {
	resp, err := s.provider.GenerateContent(ctx, &ContentRequest{
		Prompt: prompt,
		Media:  &media,
		Model:  s.model,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// CaptionService implements interfaces.CaptionGenerator on top of a provider factory.
type CaptionService struct {
	provider generator
	model    string
}

// NewCaptionService creates a caption service using the configured caption model,
// or the default provider's model when none is set.
func NewCaptionService(factory *ProviderFactory) *CaptionService {
	return &CaptionService{provider: factory, model: factory.llmConfig.CaptionModel}
}

// Generate returns the caption text for prompt.
func (s *CaptionService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.provider.GenerateContent(ctx, &ContentRequest{
		Prompt: prompt,
		Model:  s.model,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

var (
	_ interfaces.VisionService    = (*VisionService)(nil)
	_ interfaces.CaptionGenerator = (*CaptionService)(nil)
)
