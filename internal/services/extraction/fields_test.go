package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleAnswer = `Product Name: fresh eggplant
Price: 79¢ x lb.
Sale Dates: 05/13-05/15
Store Name: Ted's Fresh Market
Promotional Text: 3 DAYS ONLY
Product Category: Produce
Detected Brands/Logos: Not found`

func TestExtractField(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		label string
		def   string
		want  string
	}{
		{"present", sampleAnswer, LabelProduct, "x", "fresh eggplant"},
		{"case insensitive label", "product name:   Milk  ", LabelProduct, "x", "Milk"},
		{"absent label", sampleAnswer, "Aisle", "none", "none"},
		{"not found sentinel", sampleAnswer, LabelBrands, "N/A", "N/A"},
		{"n/a sentinel", "Price: n/a", LabelPrice, "", ""},
		{"empty value", "Price:", LabelPrice, "dflt", "dflt"},
		{"first line wins", "Price: $1\nPrice: $2", LabelPrice, "", "$1"},
		{"line anchored", "Old Price: $9\nPrice: $3", LabelPrice, "", "$3"},
		{"windows line endings", "Price: $3\r\nStore Name: X\r\n", LabelPrice, "", "$3"},
		{"label with slash", "Detected Brands/Logos: Coca-Cola, Lay's", LabelBrands, "", "Coca-Cola, Lay's"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractField(tt.text, tt.label, tt.def))
		})
	}
}

func TestParseFieldsScore(t *testing.T) {
	full := ParseFields(sampleAnswer)
	assert.Equal(t, "79¢ x lb.", full.Price)
	assert.Equal(t, "", full.Brands)
	assert.Equal(t, MaxScore, full.Score())

	partial := ParseFields("Product Name: Milk\nSale Dates: Not found\nStore Name: Viva")
	assert.Equal(t, 3, partial.Score())

	assert.Equal(t, 0, ParseFields("I could not read this image.").Score())
}

func TestAnalysisPromptRequestsEveryLabel(t *testing.T) {
	prompt := AnalysisPrompt()
	for _, label := range []string{LabelProduct, LabelPrice, LabelSaleDates, LabelStore, LabelPromotional, LabelCategory, LabelBrands} {
		assert.True(t, strings.Contains(prompt, "\n"+label+":"), label)
	}
}
