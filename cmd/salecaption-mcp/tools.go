package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createListStoresTool returns the list_stores tool definition
func createListStoresTool() mcp.Tool {
	return mcp.NewTool("list_stores",
		mcp.WithDescription("List the store catalog with each store's sale types and date formats"),
	)
}

// createAnalyzeMediaTool returns the analyze_media tool definition
func createAnalyzeMediaTool() mcp.Tool {
	return mcp.NewTool("analyze_media",
		mcp.WithDescription("Analyze sale ad images and replace the current batch. A directory path is one video whose image files are its frames."),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Image files or frame directories, in batch order"),
		),
	)
}

// createEditItemTool returns the edit_item tool definition
func createEditItemTool() mcp.Tool {
	return mcp.NewTool("edit_item",
		mcp.WithDescription("Correct extracted fields of one analyzed item before generating its caption"),
		mcp.WithString("item_id",
			mcp.Required(),
			mcp.Description("Item ID (format: file-{name}-{index})"),
		),
		mcp.WithString("product_name", mcp.Description("Product name")),
		mcp.WithString("category", mcp.Description("Product category")),
		mcp.WithString("brands", mcp.Description("Detected brands")),
		mcp.WithString("store_key", mcp.Description("Catalog store key")),
		mcp.WithString("price", mcp.Description("Price text, normalized like extracted prices (e.g. 2 for $5.00)")),
		mcp.WithString("start", mcp.Description("Sale start date (YYYY-MM-DD)")),
		mcp.WithString("end", mcp.Description("Sale end date (YYYY-MM-DD)")),
	)
}

// createGenerateCaptionsTool returns the generate_captions tool definition
func createGenerateCaptionsTool() mcp.Tool {
	return mcp.NewTool("generate_captions",
		mcp.WithDescription("Generate captions for the analyzed batch, or for a single item when item_id is given"),
		mcp.WithString("item_id",
			mcp.Description("Regenerate only this item"),
		),
		mcp.WithString("tone",
			mcp.Description("Caption tone value or label (e.g. Friendly, Seasonal)"),
		),
	)
}

// createResolveSaleDatesTool returns the resolve_sale_dates tool definition
func createResolveSaleDatesTool() mcp.Tool {
	return mcp.NewTool("resolve_sale_dates",
		mcp.WithDescription("Resolve a sale dates text such as \"05/13 to 05/15\" or \"05/13-15\" into a date range"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Sale dates as printed on the ad"),
		),
	)
}

// createHolidayContextTool returns the holiday_context tool definition
func createHolidayContextTool() mcp.Tool {
	return mcp.NewTool("holiday_context",
		mcp.WithDescription("Find the holiday falling within a sale period"),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start date (YYYY-MM-DD)"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End date (YYYY-MM-DD)"),
		),
	)
}

// createNormalizePriceTool returns the normalize_price tool definition
func createNormalizePriceTool() mcp.Tool {
	return mcp.NewTool("normalize_price",
		mcp.WithDescription("Normalize a price text into the price format catalog"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Price as printed on the ad (e.g. 69¢ lb, $1.50 ea, 2 for $5)"),
		),
	)
}

// createReviewReportTool returns the review_report tool definition
func createReviewReportTool() mcp.Tool {
	return mcp.NewTool("review_report",
		mcp.WithDescription("Render a markdown review report of the current batch"),
	)
}
