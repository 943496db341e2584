package model

// TokenUsage accumulates prompt/completion token counts and the dollar
// cost they priced out to for one chat-completions call.
type TokenUsage struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
}

// Add returns the element-wise sum of u and other.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		CostUSD:      u.CostUSD + other.CostUSD,
	}
}

// Total returns InputTokens + OutputTokens.
func (u TokenUsage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// Totals is the run-level rollup required by spec.md §3.3: the sum of
// wall-clock seconds across phases, the sum of LLM spend across C3 and
// C5, and the sum of the four LLM-call token counts (C3 input/output,
// C5 input/output) as one scalar.
type Totals struct {
	Seconds float64 `json:"seconds"`
	CostUSD float64 `json:"cost_usd"`
	Tokens  int     `json:"tokens"`
}
