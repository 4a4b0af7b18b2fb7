package stores

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/salecaption/internal/models"
)

func TestBuiltin_Order(t *testing.T) {
	stores := Builtin()
	keys := make([]string, 0, len(stores))
	for _, s := range stores {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{
		"LA_HACIENDA_MARKET",
		"TEDS_FRESH_MARKET",
		"LA_PRINCESA_MARKET",
		"MI_TIENDITA",
		"VIVA_SUPERMARKET",
		"INTERNATIONAL_FRESH_MARKET",
		"SAMS_FOODS_SUPERMARKET",
		"RRANCH_MARKET",
		"MI_RANCHO_SUPERMARKET",
	}, keys)

	teds := stores[1]
	require.Len(t, teds.SaleTypes, 2)
	assert.Equal(t, "THREE_DAY", teds.SaleTypes[0].Key)
	assert.Equal(t, "Ted's Fresh Market", teds.DisplayName())
	assert.True(t, teds.SaleTypes[0].ActiveOn(time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC))) // Tuesday
	assert.True(t, teds.SaleTypes[1].ActiveOn(time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC))) // Friday

	hacienda := stores[0]
	assert.False(t, hacienda.SaleTypes[0].IsSaleBased())
	assert.Equal(t, models.LanguageSpanish, hacienda.SaleTypes[0].Language)
}

func TestBuiltin_ReturnsCopies(t *testing.T) {
	first := Builtin()
	first[0].SaleTypes[0].Name = "changed"
	second := Builtin()
	assert.NotEqual(t, "changed", second[0].SaleTypes[0].Name)
}

func TestMatchStore(t *testing.T) {
	catalog := &models.Catalog{Stores: Builtin()}

	tests := []struct {
		detected string
		want     string
		ok       bool
	}{
		{"TEDS FRESH MARKET - WEEKLY AD", "TEDS_FRESH_MARKET", true},
		{"ted's fresh market", "TEDS_FRESH_MARKET", true},
		{"Viva", "VIVA_SUPERMARKET", true},
		{"Unknown Grocer XYZ", "", false},
		{"", "", false},
		{"!!!", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.detected, func(t *testing.T) {
			got, ok := MatchStore(catalog, tt.detected)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMerge_BuiltinWinsConflict(t *testing.T) {
	builtins := []models.Store{{
		Key:       "SHOP",
		SaleTypes: []models.SaleTemplate{{Key: "WEEKLY", Name: "Shop (Weekly)"}},
	}}
	customs := []models.Store{
		{Key: "SHOP", SaleTypes: []models.SaleTemplate{
			{Key: "WEEKLY", Name: "Override"},
			{Key: "FLASH", Name: "Shop (Flash)"},
		}},
		{Key: "NEW", SaleTypes: []models.SaleTemplate{{Key: "DAILY", Name: "New (Daily)"}}},
		{Key: "SHOP", SaleTypes: []models.SaleTemplate{{Key: "FLASH", Name: "Shop (Flash v2)"}}},
	}

	catalog, warnings := Merge(builtins, customs)

	require.Len(t, warnings, 1)
	assert.Equal(t, MergeWarning{StoreKey: "SHOP", SaleTypeKey: "WEEKLY"}, warnings[0])
	assert.Equal(t, []string{"SHOP", "NEW"}, catalog.Keys())

	shop, ok := catalog.Store("SHOP")
	require.True(t, ok)
	require.Len(t, shop.SaleTypes, 2)
	assert.Equal(t, "Shop (Weekly)", shop.SaleTypes[0].Name)
	assert.Equal(t, "Shop (Flash v2)", shop.SaleTypes[1].Name)
	assert.True(t, shop.Custom)

	added, ok := catalog.Store("NEW")
	require.True(t, ok)
	assert.True(t, added.Custom)
}

const customYAML = `
CORNER_SHOP:
  WEEKEND:
    name: Corner Shop (Weekend)
    language: English
    original_example: "Weekend deals!"
    dateFormat: MM/DD-MM/DD
    location: Main St.
    baseHashtags: "#Corner"
    routing:
      - kind: weekday
        weekdays: [sat, sunday]
  EVERYDAY:
    name: Corner Shop (Everyday)
    language: english
    location: Main St.
    baseHashtags: "#Corner"
`

const customJSON = `{
  "ZETA_MART": {"B_SALE": {"name": "Zeta Mart (B)", "language": "english"}},
  "ALPHA_MART": {"A_SALE": {"name": "Alpha Mart (A)", "language": "spanish"}}
}`

const customTOML = `
[[stores]]
key = "CORNER_SHOP"

[[stores.sale_types]]
key = "FLASH"
name = "Corner Shop (Flash)"
language = "english"
date_format = "MM/DD"
routing = [{ kind = "weekday", weekdays = ["monday"] }]
`

func TestDecode(t *testing.T) {
	t.Run("yaml keeps order and parses routing", func(t *testing.T) {
		stores, err := Decode([]byte(customYAML), FormatYAML)
		require.NoError(t, err)
		require.Len(t, stores, 1)
		shop := stores[0]
		require.Len(t, shop.SaleTypes, 2)
		assert.Equal(t, "WEEKEND", shop.SaleTypes[0].Key)
		assert.Equal(t, "corner_shop_weekend", shop.SaleTypes[0].ID)
		assert.Equal(t, "english", shop.SaleTypes[0].Language)
		assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, shop.SaleTypes[0].Routing[0].Weekdays)
		assert.False(t, shop.SaleTypes[1].IsSaleBased())
	})

	t.Run("json keeps document order", func(t *testing.T) {
		stores, err := Decode([]byte(customJSON), FormatJSON)
		require.NoError(t, err)
		require.Len(t, stores, 2)
		assert.Equal(t, "ZETA_MART", stores[0].Key)
		assert.Equal(t, "ALPHA_MART", stores[1].Key)
	})

	t.Run("toml", func(t *testing.T) {
		stores, err := Decode([]byte(customTOML), FormatTOML)
		require.NoError(t, err)
		require.Len(t, stores, 1)
		tmpl := stores[0].SaleTypes[0]
		assert.Equal(t, "FLASH", tmpl.Key)
		assert.Equal(t, []time.Weekday{time.Monday}, tmpl.Routing[0].Weekdays)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		_, err := Decode([]byte("SHOP:\n  SALE:\n    language: english\n"), FormatYAML)
		assert.True(t, errors.Is(err, ErrInvalidDefinition))
	})

	t.Run("unknown weekday is rejected", func(t *testing.T) {
		doc := "SHOP:\n  SALE:\n    name: Shop (Sale)\n    language: english\n    routing:\n      - kind: weekday\n        weekdays: [someday]\n"
		_, err := Decode([]byte(doc), FormatYAML)
		assert.True(t, errors.Is(err, ErrInvalidDefinition))
	})

	t.Run("non-mapping root is rejected", func(t *testing.T) {
		_, err := Decode([]byte("- a\n- b\n"), FormatYAML)
		assert.True(t, errors.Is(err, ErrInvalidDefinition))
	})
}

func TestNewDefinition(t *testing.T) {
	store, err := NewDefinition(Definition{
		StoreName:      "Corner Shop #2",
		SaleTypeKey:    "flash sale",
		SaleTypeName:   "Flash Sale",
		Language:       "English",
		Example:        "Flash deals today only!",
		DateFormat:     "MM/DD",
		Location:       "12 Main St.",
		BaseHashtags:   "#Corner",
		WeekdayRouting: []string{"Friday"},
	})
	require.NoError(t, err)
	assert.Equal(t, "CORNER_SHOP_2", store.Key)
	assert.True(t, store.Custom)
	tmpl := store.SaleTypes[0]
	assert.Equal(t, "FLASHSALE", tmpl.Key)
	assert.Equal(t, "corner_shop_2_flashsale", tmpl.ID)
	assert.Equal(t, "Corner Shop #2 (Flash Sale)", tmpl.Name)
	assert.Equal(t, "Corner Shop #2", tmpl.StoreName())
	assert.Equal(t, []time.Weekday{time.Friday}, tmpl.Routing[0].Weekdays)

	_, err = NewDefinition(Definition{StoreName: "X", Language: "french"})
	assert.True(t, errors.Is(err, ErrInvalidDefinition))
}

func TestCatalog_Sources(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(customYAML), 0644))
	tomlPath := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(customTOML), 0644))

	catalog, err := NewCatalog(context.Background(), arbor.NewLogger(), NewFileSource(yamlPath), NewFileSource(tomlPath))
	require.NoError(t, err)

	keys := catalog.Keys()
	assert.Equal(t, "LA_HACIENDA_MARKET", keys[0])
	assert.Equal(t, "CORNER_SHOP", keys[len(keys)-1])
	assert.Equal(t, "LA_HACIENDA_MARKET", catalog.DefaultStoreKey())

	shop, ok := catalog.Store("CORNER_SHOP")
	require.True(t, ok)
	assert.Len(t, shop.SaleTypes, 3)

	key, ok := catalog.Match("corner shop downtown")
	assert.True(t, ok)
	assert.Equal(t, "CORNER_SHOP", key)
	assert.Empty(t, catalog.Warnings())
}

func TestCatalog_AddDefinitionAndWarnings(t *testing.T) {
	conflict := StaticSource{Stores: []models.Store{{
		Key:       "TEDS_FRESH_MARKET",
		SaleTypes: []models.SaleTemplate{{Key: "THREE_DAY", Name: "Ted's Fresh Market (Override)"}},
	}}}
	catalog, err := NewCatalog(context.Background(), arbor.NewLogger(), conflict)
	require.NoError(t, err)
	require.Len(t, catalog.Warnings(), 1)

	teds, ok := catalog.Store("TEDS_FRESH_MARKET")
	require.True(t, ok)
	assert.Equal(t, "Ted's Fresh Market (3-Day Sale)", teds.SaleTypes[0].Name)

	key, err := catalog.AddDefinition(Definition{
		StoreName:    "Bodega Luna",
		SaleTypeKey:  "WEEKLY",
		SaleTypeName: "Ofertas",
		Language:     "spanish",
		Example:      "¡Ofertas!",
		Location:     "Chicago",
		BaseHashtags: "#Bodega",
	})
	require.NoError(t, err)
	assert.Equal(t, "BODEGA_LUNA", key)
	_, ok = catalog.Store("BODEGA_LUNA")
	assert.True(t, ok)

	snap := catalog.Snapshot()
	snap.Stores[0].Key = "MUTATED"
	assert.Equal(t, "LA_HACIENDA_MARKET", catalog.Keys()[0])
}

func TestFileSource_Errors(t *testing.T) {
	_, err := NewFileSource("stores.csv").Load(context.Background())
	assert.Error(t, err)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background())
	assert.Error(t, err)
}
