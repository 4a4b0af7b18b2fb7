package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/salecaption/internal/app"
	"github.com/ternarybob/salecaption/internal/models"
	"github.com/ternarybob/salecaption/internal/services/pricing"
	"github.com/ternarybob/salecaption/internal/services/report"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	result := textResult(fmt.Sprintf(format, args...))
	result.IsError = true
	return result
}

// handleListStores implements the list_stores tool
func handleListStores(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		catalog := application.Session.Catalog()
		logger.Debug().Int("stores", len(catalog.Stores)).Msg("Listing stores")
		return textResult(formatStores(catalog, application.Session.DefaultStoreKey())), nil
	}
}

// handleAnalyzeMedia implements the analyze_media tool
func handleAnalyzeMedia(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		paths := request.GetStringSlice("paths", nil)
		if len(paths) == 0 {
			return errorResult("Error: paths parameter is required"), nil
		}

		uploads, err := app.LoadUploads(paths)
		if err != nil {
			return errorResult("Error: %v", err), nil
		}

		if err := application.Session.ReplaceFiles(ctx, uploads); err != nil {
			logger.Error().Err(err).Int("files", len(uploads)).Msg("Analysis failed")
			return errorResult("Analysis error: %v", err), nil
		}

		return textResult(formatItems("Analyzed Items", application.Session.Items())), nil
	}
}

// handleEditItem implements the edit_item tool
func handleEditItem(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("item_id")
		if err != nil || id == "" {
			return errorResult("Error: item_id parameter is required"), nil
		}

		edit, err := parseEdit(request)
		if err != nil {
			return errorResult("Error: %v", err), nil
		}

		if err := application.Session.EditItem(id, edit); err != nil {
			logger.Warn().Err(err).Str("item_id", id).Msg("Edit rejected")
			return errorResult("Edit error: %v", err), nil
		}

		item, _ := application.Session.Item(id)
		return textResult(formatItems("Updated Item", []models.AnalyzedItem{item})), nil
	}
}

func parseEdit(request mcp.CallToolRequest) (models.ItemEdit, error) {
	var edit models.ItemEdit
	optional := func(name string) *string {
		if v := request.GetString(name, ""); v != "" {
			return &v
		}
		return nil
	}

	edit.ProductName = optional("product_name")
	edit.Category = optional("category")
	edit.DetectedBrands = optional("brands")
	edit.StoreKey = optional("store_key")
	if price := optional("price"); price != nil {
		sel := pricing.Normalize(*price)
		edit.Price = &sel
	}
	for name, target := range map[string]**time.Time{"start": &edit.Start, "end": &edit.End} {
		v := optional(name)
		if v == nil {
			continue
		}
		t, err := time.ParseInLocation(models.DateLayout, *v, time.UTC)
		if err != nil {
			return models.ItemEdit{}, fmt.Errorf("%s must be YYYY-MM-DD: %w", name, err)
		}
		*target = &t
	}
	return edit, nil
}

// handleGenerateCaptions implements the generate_captions tool
func handleGenerateCaptions(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session := application.Session

		if toneArg := request.GetString("tone", ""); toneArg != "" {
			tone, err := app.ResolveTone(toneArg)
			if err != nil {
				return errorResult("Error: %v", err), nil
			}
			session.SetTone(tone)
		}

		if id := request.GetString("item_id", ""); id != "" {
			item, err := session.GenerateItem(ctx, id)
			if err != nil {
				logger.Error().Err(err).Str("item_id", id).Msg("Caption generation failed")
				return errorResult("Generation error: %v", err), nil
			}
			return textResult(formatItems("Caption", []models.AnalyzedItem{item})), nil
		}

		session.SelectAll()
		result, err := session.GenerateBatch(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Caption batch failed")
			return errorResult("Generation error: %v", err), nil
		}

		title := fmt.Sprintf("Captions (%d generated, %d failed)", result.Generated, result.Failed)
		return textResult(formatItems(title, session.Items())), nil
	}
}

// handleResolveSaleDates implements the resolve_sale_dates tool
func handleResolveSaleDates(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return errorResult("Error: text parameter is required"), nil
		}

		res := application.Resolver.ResolveRange(text, application.Resolver.DefaultRange())
		holiday := application.Calendar.Lookup(res.Range.Start, res.Range.End)
		return textResult(formatRange(text, res, holiday)), nil
	}
}

// handleHolidayContext implements the holiday_context tool
func handleHolidayContext(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var bounds [2]time.Time
		for i, name := range []string{"start", "end"} {
			v, err := request.RequireString(name)
			if err != nil {
				return errorResult("Error: %s parameter is required", name), nil
			}
			bounds[i], err = time.ParseInLocation(models.DateLayout, strings.TrimSpace(v), time.UTC)
			if err != nil {
				return errorResult("Error: %s must be YYYY-MM-DD", name), nil
			}
		}

		holiday := application.Calendar.Lookup(bounds[0], bounds[1])
		if holiday == "" {
			return textResult("No holiday falls within this period."), nil
		}
		return textResult(holiday), nil
	}
}

// handleNormalizePrice implements the normalize_price tool
func handleNormalizePrice(logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return errorResult("Error: text parameter is required"), nil
		}
		return textResult(formatPrice(pricing.Normalize(text))), nil
	}
}

// handleReviewReport implements the review_report tool
func handleReviewReport(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session := application.Session
		r := report.Report{
			GeneratedAt: time.Now(),
			Tone:        session.Tone(),
			Catalog:     session.Catalog(),
			Items:       session.Items(),
		}
		return textResult(r.Markdown()), nil
	}
}
