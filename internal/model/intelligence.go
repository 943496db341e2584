package model

import "time"

// CompanyIntelligence is the terminal, immutable result of a single
// Research call: the full chain of phase outputs plus the run-level
// totals described by spec.md §3.3.
//
// Totals.Seconds is the sum of ResolvedSeconds, PathSet.DiscoverySeconds,
// SelectionResult.SelectionSeconds, CrawlResult.ExtractionSeconds and
// DistillationResult.DistillSeconds. Totals.CostUSD and Totals.Tokens
// sum only the two LLM-calling phases, C3 and C5 — C1, C2 and C4 make
// no model calls and contribute zero cost and zero tokens.
type CompanyIntelligence struct {
	TraceID          string              `json:"trace_id"`
	Seed             SeedInput           `json:"seed"`
	ResolvedSeed     ResolvedSeed        `json:"resolved_seed"`
	ResolvedSeconds  float64             `json:"resolved_seconds"`
	PathSet          PathSet             `json:"path_set"`
	Selection        SelectionResult     `json:"selection"`
	Crawl            CrawlResult         `json:"crawl"`
	Distillation     DistillationResult  `json:"distillation"`
	Totals           Totals              `json:"totals"`
	CompletedAt      time.Time           `json:"completed_at"`
}
