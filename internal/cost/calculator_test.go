package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRates() Rates {
	return Rates{
		Models: map[string]ModelRate{
			"haiku":  {Input: 0.80, Output: 4.00},
			"sonnet": {Input: 3.00, Output: 15.00},
		},
	}
}

func TestChat(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testRates())

	tests := []struct {
		name   string
		model  string
		input  int
		output int
		want   float64
	}{
		{"haiku simple", "haiku", 1000000, 100000, 0.80 + 0.40},
		{"sonnet simple", "sonnet", 1000000, 100000, 3.00 + 1.50},
		{"unknown model returns 0", "unknown", 1000000, 1000000, 0},
		{"zero tokens returns 0", "haiku", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := calc.Chat(tt.model, tt.input, tt.output)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestDefaultRates(t *testing.T) {
	t.Parallel()
	rates := DefaultRates()

	assert.Contains(t, rates.Models, "amazon/nova-pro-v1")
	assert.Contains(t, rates.Models, "openai/gpt-4o-mini")
}

func TestRatesFromConfig_EmptyConfig(t *testing.T) {
	t.Parallel()
	rates := RatesFromConfig(PricingConfig{})
	defaults := DefaultRates()

	assert.Len(t, rates.Models, len(defaults.Models))
	for model, defRate := range defaults.Models {
		assert.Equal(t, defRate, rates.Models[model], "model %s should match default", model)
	}
}

func TestRatesFromConfig_OverrideModel(t *testing.T) {
	t.Parallel()
	cfg := PricingConfig{
		Models: map[string]ModelPricing{
			"amazon/nova-pro-v1": {InputPerMTok: 1.00, OutputPerMTok: 5.00},
		},
	}
	rates := RatesFromConfig(cfg)

	nova := rates.Models["amazon/nova-pro-v1"]
	assert.InDelta(t, 1.00, nova.Input, 0.001)
	assert.InDelta(t, 5.00, nova.Output, 0.001)

	// Other models should still have defaults
	mini := rates.Models["openai/gpt-4o-mini"]
	defaults := DefaultRates()
	assert.InDelta(t, defaults.Models["openai/gpt-4o-mini"].Input, mini.Input, 0.001)
}

func TestRatesFromConfig_ZeroValuesKeepDefaults(t *testing.T) {
	t.Parallel()
	cfg := PricingConfig{
		Models: map[string]ModelPricing{
			"amazon/nova-pro-v1": {InputPerMTok: 0, OutputPerMTok: 0},
		},
	}
	rates := RatesFromConfig(cfg)
	defaults := DefaultRates()

	assert.InDelta(t, defaults.Models["amazon/nova-pro-v1"].Input, rates.Models["amazon/nova-pro-v1"].Input, 0.001)
	assert.InDelta(t, defaults.Models["amazon/nova-pro-v1"].Output, rates.Models["amazon/nova-pro-v1"].Output, 0.001)
}

func TestRatesFromConfig_NewModel(t *testing.T) {
	t.Parallel()
	cfg := PricingConfig{
		Models: map[string]ModelPricing{
			"custom/model": {InputPerMTok: 2.00, OutputPerMTok: 10.00},
		},
	}
	rates := RatesFromConfig(cfg)

	custom := rates.Models["custom/model"]
	assert.InDelta(t, 2.00, custom.Input, 0.001)
	assert.InDelta(t, 10.00, custom.Output, 0.001)
}

func TestNewCalculator(t *testing.T) {
	t.Parallel()
	rates := testRates()
	calc := NewCalculator(rates)
	assert.NotNil(t, calc)
	assert.Equal(t, rates, calc.rates)
}
