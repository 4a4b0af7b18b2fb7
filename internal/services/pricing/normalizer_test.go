package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/salecaption/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		text string
		want models.PriceSelection
	}{
		{"2 for $5.00", models.PriceSelection{Format: models.PriceMultiBuy, Value: "2 for $5.00"}},
		{"3 FOR 99¢", models.PriceSelection{Format: models.PriceMultiBuy, Value: "3 FOR 99¢"}},
		{"69¢ / lb.", models.PriceSelection{Format: models.PriceCentsPerPound, Value: "69"}},
		{"$1.99/lb", models.PriceSelection{Format: models.PriceDollarsPerPound, Value: "1.99"}},
		{"$2.49 per lb", models.PriceSelection{Format: models.PriceDollarsPerPound, Value: "2.49"}},
		{"$1.50 each", models.PriceSelection{Format: models.PriceDollarsEach, Value: "1.50"}},
		{"99¢ EACH", models.PriceSelection{Format: models.PriceCentsEach, Value: "99"}},
		{"1.29 / lb", models.PriceSelection{Format: models.PriceCentsPerPound, Value: "1.29"}},
		{"$.99 each", models.PriceSelection{Format: models.PriceDollarsEach, Value: ".99"}},
		{".89¢ / lb.", models.PriceSelection{Format: models.PriceCentsPerPound, Value: ".89"}},
		{"$ each", models.PriceSelection{Format: models.PriceCustom, Custom: "$ each"}},
		{"Buy one get one free", models.PriceSelection{Format: models.PriceCustom, Custom: "Buy one get one free"}},
		{"Not found", models.PriceSelection{Format: models.PriceCustom, Custom: "N/A"}},
		{"n/a", models.PriceSelection{Format: models.PriceCustom, Custom: "N/A"}},
		{"", models.PriceSelection{Format: models.PriceCustom, Custom: "N/A"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.text))
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		sel  models.PriceSelection
		want string
	}{
		{models.PriceSelection{Format: models.PriceCentsPerPound, Value: "69"}, "69¢ / lb."},
		{models.PriceSelection{Format: models.PriceDollarsPerPound, Value: "4.99"}, "$4.99 / lb."},
		{models.PriceSelection{Format: models.PriceDollarsEach, Value: "1.50"}, "$1.50 each"},
		{models.PriceSelection{Format: models.PriceCentsEach, Value: "99"}, "99¢ each"},
		{models.PriceSelection{Format: models.PriceMultiBuy, Value: "2 for $5.00"}, "2 for $5.00"},
		{models.PriceSelection{Format: models.PriceCustom, Custom: "BOGO"}, "BOGO"},
		{models.PriceSelection{Format: models.PriceDollarsPerPound}, "[Price Value] / lb."},
		{models.PriceSelection{Format: models.PriceCentsEach}, "[Price Value] each"},
		{models.PriceSelection{Format: models.PriceMultiBuy}, "[X for $Y Price]"},
		{models.PriceSelection{Format: models.PriceCustom}, "[Custom Price]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.sel))
		})
	}
}

func TestRenderThenNormalizeRoundTrips(t *testing.T) {
	for _, opt := range models.PriceFormats() {
		if opt.Format == models.PriceCustom {
			continue
		}
		for _, value := range []string{"69", "4.99", "1.50", ".99", "2 for $5.00"} {
			if (opt.Format == models.PriceMultiBuy) != (value == "2 for $5.00") {
				continue
			}
			sel := models.PriceSelection{Format: opt.Format, Value: value}
			assert.Equal(t, sel, Normalize(Render(sel)), "format %s value %s", opt.Format, value)
		}
	}

	assert.Equal(t, "$.99 each", Render(models.PriceSelection{Format: models.PriceDollarsEach, Value: ".99"}))
	assert.Equal(t, models.PriceSelection{Format: models.PriceDollarsEach, Value: ".99"}, Normalize("$.99 each"))
}

func TestHasPlaceholder(t *testing.T) {
	assert.True(t, HasPlaceholder(""))
	assert.True(t, HasPlaceholder("[Price Value] / lb."))
	assert.True(t, HasPlaceholder("[X for $Y Price]"))
	assert.True(t, HasPlaceholder("[Custom Price]"))
	assert.True(t, HasPlaceholder("N/A"))
	assert.False(t, HasPlaceholder("$4.99 / lb."))
	assert.False(t, HasPlaceholder("2 for $5.00"))
}
