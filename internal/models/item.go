package models

import (
	"fmt"
	"time"
)

// Extraction defaults
const (
	UnknownProduct  = "Unknown Product"
	GeneralCategory = "General Grocery"
	NoBrands        = "N/A"
)

// DateLayout is the canonical calendar date layout.
const DateLayout = "2006-01-02"

// CaptionState tracks an item through analysis and caption generation.
type CaptionState string

const (
	StateUnanalyzed     CaptionState = "unanalyzed"
	StateAnalyzed       CaptionState = "analyzed"
	StateCaptionPending CaptionState = "caption_pending"
	StateCaptionReady   CaptionState = "caption_ready"
	StateCaptionFailed  CaptionState = "caption_failed"
)

// DateRange is an inclusive sale period. A zero Start or End means the date is missing.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DefaultDateRange is the fallback sale period: today through today+6.
func DefaultDateRange(today time.Time) DateRange {
	day := Day(today)
	return DateRange{Start: day, End: day.AddDate(0, 0, 6)}
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsComplete reports whether both ends are set.
func (r DateRange) IsComplete() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Normalize swaps the ends when Start is after End. It reports whether a swap happened.
func (r *DateRange) Normalize() bool {
	if r.IsComplete() && r.Start.After(r.End) {
		r.Start, r.End = r.End, r.Start
		return true
	}
	return false
}

// String renders the range as "YYYY-MM-DD to YYYY-MM-DD".
func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", formatDay(r.Start), formatDay(r.End))
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// AnalyzedItem is one uploaded media file's extracted and user-editable state.
type AnalyzedItem struct {
	ID             string         `json:"id"`
	FileName       string         `json:"file_name"`
	MediaType      string         `json:"media_type,omitempty"`
	ProductName    string         `json:"product_name"`
	Category       string         `json:"category"`
	DetectedBrands string         `json:"detected_brands"`
	StoreKey       string         `json:"store_key"`
	Price          PriceSelection `json:"price"`
	Dates          DateRange      `json:"dates"`
	Caption        string         `json:"caption"`
	Diagnostics    Diagnostics    `json:"diagnostics"`
	Selected       bool           `json:"selected"`
	State          CaptionState   `json:"state"`
}

// ItemID derives the stable identifier of the index-th file in a batch.
func ItemID(fileName string, index int) string {
	return fmt.Sprintf("file-%s-%d", fileName, index)
}

// NewAnalyzedItem creates an item carrying the pre-extraction defaults.
func NewAnalyzedItem(fileName string, index int, storeKey string, today time.Time) *AnalyzedItem {
	return &AnalyzedItem{
		ID:             ItemID(fileName, index),
		FileName:       fileName,
		ProductName:    "",
		Category:       NoBrands,
		DetectedBrands: NoBrands,
		StoreKey:       storeKey,
		Price:          PriceSelection{Format: DefaultPriceFormat},
		Dates:          DefaultDateRange(today),
		State:          StateUnanalyzed,
	}
}

// HasBrands reports whether DetectedBrands holds a real value.
func (i *AnalyzedItem) HasBrands() bool {
	return !IsSentinel(i.DetectedBrands)
}

// ItemEdit is a partial user edit; nil fields are left unchanged.
type ItemEdit struct {
	ProductName    *string         `json:"product_name,omitempty"`
	Category       *string         `json:"category,omitempty"`
	DetectedBrands *string         `json:"detected_brands,omitempty"`
	StoreKey       *string         `json:"store_key,omitempty"`
	Price          *PriceSelection `json:"price,omitempty"`
	Start          *time.Time      `json:"start,omitempty"`
	End            *time.Time      `json:"end,omitempty"`
	Selected       *bool           `json:"selected,omitempty"`
}

// Apply mutates the item and re-establishes the date ordering invariant.
// It reports whether the dates had to be reordered.
func (e ItemEdit) Apply(item *AnalyzedItem) bool {
	if e.ProductName != nil {
		item.ProductName = *e.ProductName
	}
	if e.Category != nil {
		item.Category = *e.Category
	}
	if e.DetectedBrands != nil {
		item.DetectedBrands = *e.DetectedBrands
	}
	if e.StoreKey != nil {
		item.StoreKey = *e.StoreKey
	}
	if e.Price != nil {
		item.Price = *e.Price
	}
	if e.Start != nil {
		item.Dates.Start = Day(*e.Start)
	}
	if e.End != nil {
		item.Dates.End = Day(*e.End)
	}
	if e.Selected != nil {
		item.Selected = *e.Selected
	}
	return item.Dates.Normalize()
}
