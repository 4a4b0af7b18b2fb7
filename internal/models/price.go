package models

// PriceFormat is a tag from the fixed price format catalog.
type PriceFormat string

// Price format catalog, in matching order.
const (
	PriceCentsPerPound   PriceFormat = "¢ / lb."
	PriceDollarsPerPound PriceFormat = "$ / lb."
	PriceDollarsEach     PriceFormat = "$ each"
	PriceCentsEach       PriceFormat = "¢ each"
	PriceMultiBuy        PriceFormat = "X for $Y"
	PriceCustom          PriceFormat = "CUSTOM"
)

// PriceFormatOption pairs a format with its display label.
type PriceFormatOption struct {
	Format PriceFormat `json:"format"`
	Label  string      `json:"label"`
}

// PriceFormats returns the catalog in its fixed order.
func PriceFormats() []PriceFormatOption {
	return []PriceFormatOption{
		{Format: PriceCentsPerPound, Label: "¢ / lb. (e.g., 69¢ / lb.)"},
		{Format: PriceDollarsPerPound, Label: "$X.XX / lb. (e.g., $4.99 / lb.)"},
		{Format: PriceDollarsEach, Label: "$X.XX each (e.g., $1.50 each)"},
		{Format: PriceCentsEach, Label: "¢ each (e.g., 99¢ each)"},
		{Format: PriceMultiBuy, Label: "X for $Y.YY (e.g., 2 for $5.00)"},
		{Format: PriceCustom, Label: "Enter Custom Price..."},
	}
}

// DefaultPriceFormat is assigned to freshly created items before extraction runs.
const DefaultPriceFormat = PriceDollarsPerPound

// PriceSelection is the normalized price of an item: a format tag plus its payload.
// Value holds the number for unit formats or the verbatim text for X-for-Y;
// Custom holds free text for the CUSTOM format.
type PriceSelection struct {
	Format PriceFormat `json:"format"`
	Value  string      `json:"value,omitempty"`
	Custom string      `json:"custom,omitempty"`
}
