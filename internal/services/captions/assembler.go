package captions

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/salecaption/internal/models"
	"github.com/ternarybob/salecaption/internal/services/holidays"
	"github.com/ternarybob/salecaption/internal/services/pricing"
)

// ErrTemplateNotFound is returned when a store has no sale type to build a caption from.
var ErrTemplateNotFound = errors.New("caption template not found")

// Request is everything needed to build one caption prompt.
type Request struct {
	Item       *models.AnalyzedItem
	Store      models.Store
	Tone       models.Tone
	Continuity string    // last caption generated for the store, if any
	Day        time.Time // decides weekday routing
}

// Assembly is a built prompt together with the facts it was built from.
type Assembly struct {
	Prompt       string
	Template     models.SaleTemplate
	SaleBased    bool
	Price        string
	DisplayDates string
	DatesValid   bool
	Holiday      string
	Issues       []models.DiagnosticCode
}

// Assembler builds caption prompts.
type Assembler struct {
	calendar *holidays.Calendar
}

// NewAssembler creates an assembler using calendar for holiday context.
func NewAssembler(calendar *holidays.Calendar) *Assembler {
	if calendar == nil {
		calendar = holidays.NewCalendar()
	}
	return &Assembler{calendar: calendar}
}

// Assemble validates the item against its template and builds the prompt.
// Validation problems are reported in Issues and never stop assembly.
func (a *Assembler) Assemble(req Request) (Assembly, error) {
	tmpl, ok := SelectTemplate(req.Store, req.Day)
	if !ok {
		return Assembly{}, fmt.Errorf("%w: store %s", ErrTemplateNotFound, req.Store.Key)
	}
	item := req.Item

	asm := Assembly{
		Template:  tmpl,
		SaleBased: tmpl.IsSaleBased(),
		Price:     pricing.Render(item.Price),
	}

	product := item.ProductName
	if strings.TrimSpace(product) == "" || product == models.UnknownProduct {
		asm.Issues = append(asm.Issues, models.DiagnosticProductMissing)
	}
	if asm.SaleBased {
		if pricing.HasPlaceholder(asm.Price) {
			asm.Issues = append(asm.Issues, models.DiagnosticPriceInvalid)
		}
		asm.DisplayDates, asm.DatesValid = FormatDisplayDates(item.Dates, tmpl.DateFormat, tmpl.Language)
		if !asm.DatesValid {
			asm.Issues = append(asm.Issues, models.DiagnosticDatesInvalid)
		}
		asm.Holiday = a.calendar.Lookup(item.Dates.Start, item.Dates.End)
	}

	asm.Prompt = strings.Join(a.lines(req, &asm), "\n")
	return asm, nil
}

func (a *Assembler) lines(req Request, asm *Assembly) []string {
	item := req.Item
	tmpl := asm.Template
	showDates := asm.SaleBased && asm.DatesValid

	featured := item.ProductName
	if item.HasBrands() {
		featured += fmt.Sprintf(" (featuring %s)", item.DetectedBrands)
	}

	lines := []string{
		"Generate a social media caption for a grocery store promotion.",
		fmt.Sprintf("Store & Sale Type: %s", tmpl.Name),
		fmt.Sprintf("Product to feature: %s", featured),
	}

	if asm.SaleBased {
		lines = append(lines, fmt.Sprintf("Price: %s", asm.Price))
		if showDates {
			lines = append(lines, fmt.Sprintf("Sale Dates (for display in caption): %s. (Actual period: %s to %s).",
				asm.DisplayDates, item.Dates.Start.Format(models.DateLayout), item.Dates.End.Format(models.DateLayout)))
		}
	}
	if asm.Holiday != "" {
		lines = append(lines, fmt.Sprintf("Relevant Holiday Context: %s.", asm.Holiday))
	}

	lines = append(lines,
		fmt.Sprintf("Store Location: %s.", tmpl.Location),
		fmt.Sprintf("Language for caption: %s.", tmpl.Language),
		fmt.Sprintf("Desired Tone: %s.", req.Tone),
	)
	if asm.Holiday != "" && req.Tone == models.ToneSeasonal {
		lines = append(lines, fmt.Sprintf("Strongly emphasize the %s theme and use relevant emojis.", asm.Holiday))
	}

	if req.Continuity != "" {
		lines = append(lines,
			"\nIMPORTANT STYLISTIC NOTE: For consistency with other posts for this store, please try to follow a similar structure, tone, and overall style to the following reference caption. Adapt product details, price, and specific emojis for the current item, but keep the general formatting and sentence flow consistent with the reference.",
			fmt.Sprintf("REFERENCE CAPTION START:\n%s\nREFERENCE CAPTION END\nWhen generating the new caption, please provide a creative and different alternative to the reference caption.", req.Continuity),
		)
	}

	lines = append(lines,
		fmt.Sprintf("\nReference Style (from original example - adapt, don't copy verbatim, especially if a continuity reference above is provided):\n\"%s\"", tmpl.Example),
		"\nCaption Requirements:",
		"- Unique, engaging, ready for social media.",
	)

	if asm.SaleBased {
		lines = append(lines, fmt.Sprintf("- Feature the product on sale by stating its name (and brand like '%s' if relevant and not 'N/A') immediately followed by or closely linked to its price. For example: '%s is now %s!'. Also, clearly include the store location.",
			item.DetectedBrands, featured, asm.Price))
		if showDates {
			lines = append(lines, "- Clearly include the sale dates (as per 'display_dates').")
		}
	} else {
		lines = append(lines, fmt.Sprintf("- Feature the product by describing it in an appealing way, for example: 'Come try our delicious %s today!'. Do not mention price or sale dates.", featured))
	}

	emojiContext := "general appeal"
	if asm.SaleBased && asm.Holiday != "" {
		emojiContext = asm.Holiday
	}
	lines = append(lines, fmt.Sprintf("- Incorporate relevant emojis for product, tone, and holiday (%s).", emojiContext))

	hashtagDetails := []string{fmt.Sprintf("product-specific for '%s'", item.ProductName)}
	if !isGenericCategory(item.Category) {
		hashtagDetails = append(hashtagDetails, fmt.Sprintf("category '%s'", item.Category))
	}
	lines = append(lines, fmt.Sprintf("- Include these base hashtags: %s. Add 2-3 creative hashtags. Also, 1-2 hashtags for each: %s.",
		tmpl.BaseHashtags, strings.Join(hashtagDetails, ", ")))

	lines = append(lines,
		fmt.Sprintf("- Store's main name (%s) should be prominent if location \"%s\" is just a city/area.", tmpl.StoreName(), tmpl.Location),
		"- Good formatting with line breaks.",
	)

	if showDates && tmpl.DurationText != "" {
		lines = append(lines, fmt.Sprintf("- Naturally integrate promotional phrase \"%s\" with sale dates %s if it makes sense.", tmpl.DurationText, asm.DisplayDates))
	}
	return lines
}

func isGenericCategory(category string) bool {
	return models.IsSentinel(category) || strings.EqualFold(strings.TrimSpace(category), models.GeneralCategory)
}
