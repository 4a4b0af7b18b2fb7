package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/salecaption/internal/app"
	"github.com/ternarybob/salecaption/internal/common"
	"github.com/ternarybob/salecaption/internal/interfaces"
)

// MockVisionService is a mock implementation of VisionService
type MockVisionService struct {
	mock.Mock
}

func (m *MockVisionService) Describe(ctx context.Context, prompt string, media interfaces.Media) (string, error) {
	args := m.Called(ctx, prompt, media)
	return args.String(0), args.Error(1)
}

// MockCaptionGenerator is a mock implementation of CaptionGenerator
type MockCaptionGenerator struct {
	mock.Mock
}

func (m *MockCaptionGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	vision := new(MockVisionService)
	vision.On("Describe", mock.Anything, mock.Anything, mock.Anything).
		Return("Product Name: watermelon\nPrice: 2 for $5.00\nSale Dates: 07/01/2025 - 07/06/2025\nStore Name: Viva Supermarket", nil)
	gen := new(MockCaptionGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("**Sweet** watermelon deals", nil)

	application, err := app.NewWithServices(context.Background(), common.NewDefaultConfig(), arbor.NewLogger(), vision, gen)
	require.NoError(t, err)
	return application
}

func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListStores(t *testing.T) {
	application := newTestApp(t)
	text := resultText(t, call(t, handleListStores(application, application.Logger), nil))

	assert.Contains(t, text, "## Stores (9)")
	assert.Contains(t, text, "### La Hacienda Market (LA_HACIENDA_MARKET) [default]")
	assert.Contains(t, text, "- **GENERAL_STOCK**: La Hacienda Market (General Stock), spanish, evergreen")
}

func TestAnalyzeEditGenerate(t *testing.T) {
	application := newTestApp(t)
	logger := application.Logger

	path := filepath.Join(t.TempDir(), "melon.jpg")
	require.NoError(t, os.WriteFile(path, jpegHeader, 0644))

	result := call(t, handleAnalyzeMedia(application, logger), map[string]any{"paths": []any{path}})
	require.False(t, result.IsError)
	text := resultText(t, result)
	assert.Contains(t, text, "### file-melon.jpg-0")
	assert.Contains(t, text, "**Product:** Watermelon")
	assert.Contains(t, text, "**Price:** 2 for $5.00")
	assert.Contains(t, text, "**Store:** VIVA_SUPERMARKET")
	assert.Contains(t, text, "**Dates:** 2025-07-01 to 2025-07-06")

	result = call(t, handleEditItem(application, logger), map[string]any{
		"item_id": "file-melon.jpg-0",
		"price":   "$3.99 each",
		"end":     "2025-07-07",
	})
	require.False(t, result.IsError)
	text = resultText(t, result)
	assert.Contains(t, text, "**Price:** $3.99 each")
	assert.Contains(t, text, "**Dates:** 2025-07-01 to 2025-07-07")

	result = call(t, handleEditItem(application, logger), map[string]any{"item_id": "file-melon.jpg-0", "store_key": "NOPE"})
	assert.True(t, result.IsError)
	result = call(t, handleEditItem(application, logger), map[string]any{"item_id": "file-melon.jpg-0", "start": "July 1"})
	assert.True(t, result.IsError)

	result = call(t, handleGenerateCaptions(application, logger), map[string]any{"tone": "Seasonal"})
	require.False(t, result.IsError)
	text = resultText(t, result)
	assert.Contains(t, text, "## Captions (1 generated, 0 failed)")
	assert.Contains(t, text, "Sweet watermelon deals")

	result = call(t, handleGenerateCaptions(application, logger), map[string]any{"item_id": "missing"})
	assert.True(t, result.IsError)
	result = call(t, handleGenerateCaptions(application, logger), map[string]any{"tone": "Grumpy"})
	assert.True(t, result.IsError)

	text = resultText(t, call(t, handleReviewReport(application, logger), nil))
	assert.Contains(t, text, "Tone: Seasonal / Festive")
	assert.Contains(t, text, "| 1 | melon.jpg | Viva Supermarket | Watermelon | $3.99 each | 2025-07-01 to 2025-07-07 | ready |")
}

func TestAnalyzeMedia_Errors(t *testing.T) {
	application := newTestApp(t)

	assert.True(t, call(t, handleAnalyzeMedia(application, application.Logger), nil).IsError)
	result := call(t, handleAnalyzeMedia(application, application.Logger), map[string]any{
		"paths": []any{filepath.Join(t.TempDir(), "missing.jpg")},
	})
	assert.True(t, result.IsError)
}

func TestResolveSaleDates(t *testing.T) {
	application := newTestApp(t)
	text := resultText(t, call(t, handleResolveSaleDates(application, application.Logger), map[string]any{"text": "07/03/2025"}))

	assert.Contains(t, text, "**Start:** 2025-07-03")
	assert.Contains(t, text, "**End:** 2025-07-04")
	assert.Contains(t, text, "**Holiday:** Independence Day (4th of July)")
	assert.Contains(t, text, "- End date inferred (1 day after start). Review.")
}

func TestHolidayContext(t *testing.T) {
	application := newTestApp(t)
	handler := handleHolidayContext(application, application.Logger)

	text := resultText(t, call(t, handler, map[string]any{"start": "2025-12-20", "end": "2025-12-26"}))
	assert.Equal(t, "Christmas Day", text)

	text = resultText(t, call(t, handler, map[string]any{"start": "2025-08-04", "end": "2025-08-08"}))
	assert.Equal(t, "No holiday falls within this period.", text)

	assert.True(t, call(t, handler, map[string]any{"start": "2025-08-04"}).IsError)
	assert.True(t, call(t, handler, map[string]any{"start": "08/04", "end": "2025-08-08"}).IsError)
}

func TestNormalizePrice(t *testing.T) {
	handler := handleNormalizePrice(arbor.NewLogger())

	text := resultText(t, call(t, handler, map[string]any{"text": "2 for $5.00"}))
	assert.Contains(t, text, "**Format:** X for $Y")
	assert.Contains(t, text, "**Display:** 2 for $5.00")

	text = resultText(t, call(t, handler, map[string]any{"text": "Buy one get one"}))
	assert.Contains(t, text, "**Format:** CUSTOM")
	assert.Contains(t, text, "**Custom:** Buy one get one")

	assert.True(t, call(t, handler, nil).IsError)
}

func TestRegisterTools(t *testing.T) {
	application := newTestApp(t)
	s := server.NewMCPServer("salecaption", "test", server.WithToolCapabilities(true))
	registerTools(s, application)

	tools := s.ListTools()
	for _, name := range []string{"list_stores", "analyze_media", "edit_item", "generate_captions", "resolve_sale_dates", "holiday_context", "normalize_price", "review_report"} {
		assert.Contains(t, tools, name)
	}
}
