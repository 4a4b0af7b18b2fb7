package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/salecaption/internal/models"
	"github.com/ternarybob/salecaption/internal/services/dates"
	"github.com/ternarybob/salecaption/internal/services/pricing"
)

// formatStores formats the catalog as markdown
func formatStores(catalog *models.Catalog, defaultStore string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Stores (%d)\n\n", len(catalog.Stores)))

	for _, s := range catalog.Stores {
		sb.WriteString(fmt.Sprintf("### %s (%s)", s.DisplayName(), s.Key))
		if s.Key == defaultStore {
			sb.WriteString(" [default]")
		}
		if s.Custom {
			sb.WriteString(" [custom]")
		}
		sb.WriteString("\n")
		for _, t := range s.SaleTypes {
			dateFormat := "evergreen"
			if t.IsSaleBased() {
				dateFormat = t.DateFormat
			}
			sb.WriteString(fmt.Sprintf("- **%s**: %s, %s, %s\n", t.Key, t.Name, t.Language, dateFormat))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatItems formats analyzed items as markdown
func formatItems(title string, items []models.AnalyzedItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))

	if len(items) == 0 {
		sb.WriteString("No items.\n")
		return sb.String()
	}

	for _, item := range items {
		sb.WriteString(fmt.Sprintf("### %s\n", item.ID))
		sb.WriteString(fmt.Sprintf("**Product:** %s (%s)\n", item.ProductName, item.Category))
		sb.WriteString(fmt.Sprintf("**Brands:** %s\n", item.DetectedBrands))
		sb.WriteString(fmt.Sprintf("**Store:** %s\n", item.StoreKey))
		sb.WriteString(fmt.Sprintf("**Price:** %s\n", pricing.Render(item.Price)))
		sb.WriteString(fmt.Sprintf("**Dates:** %s\n", item.Dates))
		sb.WriteString(fmt.Sprintf("**State:** %s\n", item.State))
		if item.Caption != "" {
			sb.WriteString("\n" + item.Caption + "\n")
		}
		if len(item.Diagnostics) > 0 {
			sb.WriteString("\n**Review:** " + item.Diagnostics.String() + "\n")
		}
		sb.WriteString("\n---\n\n")
	}

	return sb.String()
}

// formatRange formats a resolved sale period as markdown
func formatRange(text string, res dates.RangeResult, holiday string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Sale Dates for \"%s\"\n\n", text))
	sb.WriteString(fmt.Sprintf("**Start:** %s\n", res.Range.Start.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("**End:** %s\n", res.Range.End.Format(models.DateLayout)))
	if holiday != "" {
		sb.WriteString(fmt.Sprintf("**Holiday:** %s\n", holiday))
	}
	if len(res.Notes) > 0 {
		sb.WriteString("\n**Notes:**\n")
		for _, code := range res.Notes {
			sb.WriteString(fmt.Sprintf("- %s\n", models.Diagnostic{Code: code}.Message()))
		}
	}
	return sb.String()
}

// formatPrice formats a normalized price as markdown
func formatPrice(sel models.PriceSelection) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Format:** %s\n", sel.Format))
	if sel.Value != "" {
		sb.WriteString(fmt.Sprintf("**Value:** %s\n", sel.Value))
	}
	if sel.Custom != "" {
		sb.WriteString(fmt.Sprintf("**Custom:** %s\n", sel.Custom))
	}
	sb.WriteString(fmt.Sprintf("**Display:** %s\n", pricing.Render(sel)))
	return sb.String()
}
