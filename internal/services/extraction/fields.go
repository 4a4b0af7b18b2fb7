package extraction

import (
	"regexp"
	"strings"
	"sync"

	"github.com/ternarybob/salecaption/internal/models"
)

// Labels requested by AnalysisPrompt
const (
	LabelProduct     = "Product Name"
	LabelPrice       = "Price"
	LabelSaleDates   = "Sale Dates"
	LabelStore       = "Store Name"
	LabelPromotional = "Promotional Text"
	LabelCategory    = "Product Category"
	LabelBrands      = "Detected Brands/Logos"
)

var (
	labelPatterns   = map[string]*regexp.Regexp{}
	labelPatternsMu sync.Mutex
)

func labelPattern(label string) *regexp.Regexp {
	labelPatternsMu.Lock()
	defer labelPatternsMu.Unlock()
	if re, ok := labelPatterns[label]; ok {
		return re
	}
	re := regexp.MustCompile(`(?im)^` + regexp.QuoteMeta(label) + `:[ \t]*(.*?)[ \t\r]*$`)
	labelPatterns[label] = re
	return re
}

// ExtractField returns the value on the first line of text starting with "label:",
// matched case-insensitively. The default is returned when the label is absent or
// the value is empty, "not found" or "n/a".
func ExtractField(text, label, def string) string {
	m := labelPattern(label).FindStringSubmatch(text)
	if m == nil {
		return def
	}
	value := strings.TrimSpace(m[1])
	if models.IsSentinel(value) {
		return def
	}
	return value
}

// Fields is the raw labeled output of one vision call.
type Fields struct {
	Product     string
	Price       string
	SaleDates   string
	Store       string
	Promotional string
	Category    string
	Brands      string
}

// ParseFields extracts every requested label, leaving missing ones empty.
func ParseFields(text string) Fields {
	return Fields{
		Product:     ExtractField(text, LabelProduct, ""),
		Price:       ExtractField(text, LabelPrice, ""),
		SaleDates:   ExtractField(text, LabelSaleDates, ""),
		Store:       ExtractField(text, LabelStore, ""),
		Promotional: ExtractField(text, LabelPromotional, ""),
		Category:    ExtractField(text, LabelCategory, ""),
		Brands:      ExtractField(text, LabelBrands, ""),
	}
}

// Score rates how complete an analysis is: product and price count 2, dates and store 1.
func (f Fields) Score() int {
	score := 0
	if f.Product != "" {
		score += 2
	}
	if f.Price != "" {
		score += 2
	}
	if f.SaleDates != "" {
		score++
	}
	if f.Store != "" {
		score++
	}
	return score
}

// MaxScore is the score of an analysis with every scored field present.
const MaxScore = 6
