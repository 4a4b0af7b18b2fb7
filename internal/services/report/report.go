// Package report renders a review report of a caption batch as markdown or HTML.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ternarybob/salecaption/internal/models"
	"github.com/ternarybob/salecaption/internal/services/pricing"
)

// Report is a snapshot of a batch ready for review.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Tone        models.Tone
	Catalog     *models.Catalog
	Items       []models.AnalyzedItem
}

// Markdown renders a summary table followed by one section per item.
func (r Report) Markdown() string {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = "Sale Caption Review"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	}
	if r.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n\n", r.Tone.Label())
	}

	ready, failed, review := r.counts()
	fmt.Fprintf(&b, "Items: %d | Captions ready: %d | Failed: %d | Needs review: %d\n\n",
		len(r.Items), ready, failed, review)

	if len(r.Items) == 0 {
		b.WriteString("_No items._\n")
		return b.String()
	}

	b.WriteString("| # | File | Store | Product | Price | Sale Dates | Status |\n")
	b.WriteString("|---|------|-------|---------|-------|------------|--------|\n")
	for i, item := range r.Items {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			i+1,
			cell(item.FileName),
			cell(r.storeName(item.StoreKey)),
			cell(item.ProductName),
			cell(pricing.Render(item.Price)),
			cell(item.Dates.String()),
			statusLabel(item.State),
		)
	}

	for i, item := range r.Items {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, item.FileName)
		fmt.Fprintf(&b, "- Store: %s\n", r.storeName(item.StoreKey))
		fmt.Fprintf(&b, "- Category: %s\n", item.Category)
		fmt.Fprintf(&b, "- Brands: %s\n", item.DetectedBrands)

		if item.Caption != "" {
			b.WriteString("\n")
			for _, line := range strings.Split(strings.TrimSpace(item.Caption), "\n") {
				b.WriteString("> " + line + "\n")
			}
		}

		if len(item.Diagnostics) > 0 {
			b.WriteString("\n**Review notes**\n\n")
			for _, d := range item.Diagnostics {
				b.WriteString("- " + d.Message() + "\n")
			}
		}
	}

	return b.String()
}

// HTML converts the markdown report with GitHub Flavored Markdown extensions.
func (r Report) HTML() (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(r.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("failed to render report HTML: %w", err)
	}
	return buf.String(), nil
}

// WriteFile writes the report to path. Files ending in .html or .htm get HTML, anything else markdown.
func (r Report) WriteFile(path string) error {
	content := r.Markdown()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		body, err := r.HTML()
		if err != nil {
			return err
		}
		content = body
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

func (r Report) counts() (ready, failed, review int) {
	for _, item := range r.Items {
		switch item.State {
		case models.StateCaptionReady:
			ready++
		case models.StateCaptionFailed:
			failed++
		}
		if len(item.Diagnostics) > 0 {
			review++
		}
	}
	return ready, failed, review
}

func (r Report) storeName(key string) string {
	if store, ok := r.Catalog.Store(key); ok {
		if name := store.DisplayName(); name != "" {
			return name
		}
	}
	return key
}

func statusLabel(state models.CaptionState) string {
	switch state {
	case models.StateCaptionReady:
		return "ready"
	case models.StateCaptionFailed:
		return "failed"
	case models.StateCaptionPending:
		return "pending"
	case models.StateAnalyzed:
		return "analyzed"
	default:
		return "not analyzed"
	}
}

// cell keeps a value on one table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
