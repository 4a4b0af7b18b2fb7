package stores

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ternarybob/salecaption/internal/models"
)

var nonIdentifier = regexp.MustCompile(`[^A-Z0-9_]`)

// Definition is a user-entered custom store with one sale type.
// DateFormat may be empty for evergreen posts.
type Definition struct {
	StoreName      string   `json:"store_name" validate:"required"`
	SaleTypeKey    string   `json:"sale_type_key" validate:"required"`
	SaleTypeName   string   `json:"sale_type_name" validate:"required"`
	Language       string   `json:"language" validate:"required,oneof=english spanish"`
	Example        string   `json:"original_example" validate:"required"`
	DateFormat     string   `json:"date_format"`
	DurationText   string   `json:"duration_text"`
	Location       string   `json:"location" validate:"required"`
	BaseHashtags   string   `json:"base_hashtags" validate:"required"`
	WeekdayRouting []string `json:"weekdays,omitempty"`
}

// StoreKeyFromName derives a catalog key: uppercase, spaces to underscores,
// anything outside A-Z, 0-9 and underscore removed.
func StoreKeyFromName(name string) string {
	return nonIdentifier.ReplaceAllString(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), " ", "_"), "")
}

// NewDefinition validates d and builds the single-sale-type store it describes.
func NewDefinition(d Definition) (models.Store, error) {
	d.Language = strings.ToLower(strings.TrimSpace(d.Language))
	if err := validator.New().Struct(d); err != nil {
		return models.Store{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	storeKey := StoreKeyFromName(d.StoreName)
	saleKey := nonIdentifier.ReplaceAllString(strings.ToUpper(strings.TrimSpace(d.SaleTypeKey)), "")
	if storeKey == "" || saleKey == "" {
		return models.Store{}, fmt.Errorf("%w: store name and sale type key must produce valid identifiers", ErrInvalidDefinition)
	}

	tmpl := models.SaleTemplate{
		Key:          saleKey,
		ID:           strings.ToLower(storeKey) + "_" + strings.ToLower(saleKey),
		Name:         fmt.Sprintf("%s (%s)", strings.TrimSpace(d.StoreName), strings.TrimSpace(d.SaleTypeName)),
		Language:     d.Language,
		Example:      d.Example,
		DateFormat:   d.DateFormat,
		DurationText: d.DurationText,
		Location:     d.Location,
		BaseHashtags: d.BaseHashtags,
	}
	if len(d.WeekdayRouting) > 0 {
		rule := models.RoutingRule{Kind: models.RoutingWeekday}
		for _, name := range d.WeekdayRouting {
			wd, ok := ParseWeekday(name)
			if !ok {
				return models.Store{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidDefinition, name)
			}
			rule.Weekdays = append(rule.Weekdays, wd)
		}
		tmpl.Routing = []models.RoutingRule{rule}
	}

	return models.Store{Key: storeKey, SaleTypes: []models.SaleTemplate{tmpl}, Custom: true}, nil
}
