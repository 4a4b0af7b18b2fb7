package models

import (
	"strings"
	"time"
)

// Language tags used by sale templates.
const (
	LanguageEnglish = "english"
	LanguageSpanish = "spanish"
)

// RoutingKind tags the variant of a RoutingRule.
type RoutingKind string

const (
	// RoutingWeekday activates a sale type on the listed days of the week.
	RoutingWeekday RoutingKind = "weekday"
)

// RoutingRule decides whether a sale type is active on a given day.
// Rules are evaluated the same way for every store.
type RoutingRule struct {
	Kind     RoutingKind    `json:"kind"`
	Weekdays []time.Weekday `json:"weekdays,omitempty"`
}

// Matches reports whether the rule activates on day.
func (r RoutingRule) Matches(day time.Time) bool {
	switch r.Kind {
	case RoutingWeekday:
		for _, wd := range r.Weekdays {
			if day.Weekday() == wd {
				return true
			}
		}
	}
	return false
}

// SaleTemplate is a caption blueprint for one kind of promotion at one store.
// An empty DateFormat marks an evergreen (non-sale) post without price or dates.
type SaleTemplate struct {
	Key            string        `json:"key"`
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Language       string        `json:"language"`
	Example        string        `json:"original_example"`
	DefaultProduct string        `json:"default_product,omitempty"`
	DefaultPrice   string        `json:"default_price,omitempty"`
	DateFormat     string        `json:"date_format"`
	DurationText   string        `json:"duration_text,omitempty"`
	Location       string        `json:"location"`
	BaseHashtags   string        `json:"base_hashtags"`
	Routing        []RoutingRule `json:"routing,omitempty"`
}

// IsSaleBased reports whether captions for this template must carry price and dates.
func (t SaleTemplate) IsSaleBased() bool {
	return t.DateFormat != ""
}

// StoreName returns the display name without the parenthesised sale type.
func (t SaleTemplate) StoreName() string {
	name, _, _ := strings.Cut(t.Name, "(")
	return strings.TrimSpace(name)
}

// ActiveOn reports whether any routing rule of the template matches day.
func (t SaleTemplate) ActiveOn(day time.Time) bool {
	for _, rule := range t.Routing {
		if rule.Matches(day) {
			return true
		}
	}
	return false
}

// Store is a catalog entry with its sale types in definition order.
type Store struct {
	Key       string         `json:"key"`
	SaleTypes []SaleTemplate `json:"sale_types"`
	Custom    bool           `json:"custom,omitempty"`
}

// DisplayName is the store name taken from the first sale type.
func (s Store) DisplayName() string {
	if len(s.SaleTypes) == 0 {
		return ""
	}
	return s.SaleTypes[0].StoreName()
}

// SaleType looks up a sale type by key.
func (s Store) SaleType(key string) (SaleTemplate, bool) {
	for _, t := range s.SaleTypes {
		if t.Key == key {
			return t, true
		}
	}
	return SaleTemplate{}, false
}

// Catalog is the ordered set of known stores.
type Catalog struct {
	Stores []Store `json:"stores"`
}

// Store looks up a store by key.
func (c *Catalog) Store(key string) (Store, bool) {
	if c == nil {
		return Store{}, false
	}
	for _, s := range c.Stores {
		if s.Key == key {
			return s, true
		}
	}
	return Store{}, false
}

// Keys returns store keys in catalog order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Stores))
	for _, s := range c.Stores {
		keys = append(keys, s.Key)
	}
	return keys
}

// DefaultStoreKey returns the first store key, or "" for an empty catalog.
func (c *Catalog) DefaultStoreKey() string {
	if c == nil || len(c.Stores) == 0 {
		return ""
	}
	return c.Stores[0].Key
}
