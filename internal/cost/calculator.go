// Package cost prices chat-completions token usage for the path
// selector and field distiller calls.
package cost

// Rates holds per-model pricing for the chat-completions gateway.
type Rates struct {
	Models map[string]ModelRate `yaml:"models" mapstructure:"models"`
}

// ModelRate holds per-model token pricing (USD per million tokens).
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// Calculator computes costs for chat-completions usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Chat computes the USD cost of one chat-completions call. Unknown
// model IDs price at zero rather than erroring — a provider can return
// a model alias the rate table hasn't caught up with yet, and a $0
// estimate is a safer failure mode than an aborted run.
func (c *Calculator) Chat(model string, inputTokens, outputTokens int) float64 {
	rate, ok := c.rates.Models[model]
	if !ok {
		return 0
	}
	inCost := (float64(inputTokens) / 1e6) * rate.Input
	outCost := (float64(outputTokens) / 1e6) * rate.Output
	return inCost + outCost
}

// RatesFromConfig converts config pricing into cost rates, falling back
// to DefaultRates() for any model the config leaves unset.
func RatesFromConfig(cfg PricingConfig) Rates {
	rates := Rates{Models: make(map[string]ModelRate)}
	for model, rate := range DefaultRates().Models {
		rates.Models[model] = rate
	}
	for model, mp := range cfg.Models {
		r := rates.Models[model]
		if mp.InputPerMTok > 0 {
			r.Input = mp.InputPerMTok
		}
		if mp.OutputPerMTok > 0 {
			r.Output = mp.OutputPerMTok
		}
		rates.Models[model] = r
	}
	return rates
}

// PricingConfig mirrors config.PricingConfig to avoid an import cycle.
type PricingConfig struct {
	Models map[string]ModelPricing
}

// ModelPricing mirrors config.ModelPricing.
type ModelPricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// DefaultRates returns default pricing for a handful of common
// OpenRouter-gateway chat models. Any model absent here prices at zero
// until the caller supplies config overrides.
func DefaultRates() Rates {
	return Rates{
		Models: map[string]ModelRate{
			"amazon/nova-pro-v1":      {Input: 0.80, Output: 3.20},
			"openai/gpt-4o-mini":      {Input: 0.15, Output: 0.60},
			"openai/gpt-4o":           {Input: 2.50, Output: 10.00},
			"anthropic/claude-3-haiku": {Input: 0.25, Output: 1.25},
		},
	}
}
