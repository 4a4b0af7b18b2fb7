package interfaces

import (
	"context"
)

// Media is one image or video frame handed to a vision model.
type Media struct {
	// Name identifies the media in logs and diagnostics (usually the file name)
	Name string

	// MIMEType is the detected content type, e.g. "image/jpeg"
	MIMEType string

	// Data holds the raw bytes
	Data []byte
}

// VisionService describes media using a vision-capable language model.
// The answer is free text; callers must tolerate partial compliance with
// whatever response format the prompt requests.
type VisionService interface {
	// Describe sends the prompt together with the media and returns the model's text.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - prompt: Instruction text sent alongside the media
	//   - media: Image bytes and content type
	//
	// Returns:
	//   - string: Raw model response
	//   - error: Error if the request fails or returns no text
	Describe(ctx context.Context, prompt string, media Media) (string, error)
}

// CaptionGenerator turns an assembled prompt into a social media caption.
type CaptionGenerator interface {
	// Generate returns the model's free-text response to prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
