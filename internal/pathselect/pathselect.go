// Package pathselect implements the Path Selector (C3): it calls the
// chat-completions provider once with the candidate path list and a
// fixed field-schema prompt, and parses the JSON contract described in
// spec.md §4.3. The package is named pathselect rather than "select"
// because select is a Go keyword.
package pathselect

import (
	"context"
	"fmt"
	"time"

	"github.com/sells-group/theodore-core/internal/cost"
	"github.com/sells-group/theodore-core/internal/jsonblock"
	"github.com/sells-group/theodore-core/internal/model"
	"github.com/sells-group/theodore-core/internal/resilience"
	"github.com/sells-group/theodore-core/pkg/llmrouter"
)

const defaultRationale = "Selected by model"

// Selector is the Path Selector (C3).
type Selector struct {
	client  llmrouter.Client
	calc    *cost.Calculator
	modelID string
}

// New builds a Selector using the given chat-completions client, cost
// calculator, and model id.
func New(client llmrouter.Client, calc *cost.Calculator, modelID string) *Selector {
	return &Selector{client: client, calc: calc, modelID: modelID}
}

// Options configures one Select call.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Select renders the prompt for pathSet against displayName, issues the
// single chat-completions call, and parses the result into a
// SelectionResult. It fails with *model.SelectionFailed on transport,
// HTTP-status, or parse errors — there is no retry (spec.md §4.3, §7).
func (s *Selector) Select(ctx context.Context, displayName string, pathSet model.PathSet, opts Options) (model.SelectionResult, error) {
	start := time.Now()

	prompt := BuildPrompt(displayName, pathSet.Paths)

	resp, err := s.client.CreateChatCompletion(ctx, llmrouter.ChatRequest{
		Model:       s.modelID,
		Prompt:      prompt,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		cause, _ := resilience.ClassifyLLMError(err)
		return model.SelectionResult{}, model.NewSelectionFailed(cause, err, "call selector")
	}

	obj, err := jsonblock.ParseObject(resp.Content)
	if err != nil {
		// Legacy format: some models answer with a bare JSON array of
		// paths instead of the {"selected_paths": [...]} object.
		arr, arrErr := jsonblock.ParseArray(resp.Content)
		if arrErr != nil {
			msg := fmt.Sprintf("parse selector response (raw: %q)", jsonblock.Preview(resp.Content, 200))
			return model.SelectionResult{}, model.NewSelectionFailed(model.CauseParse, err, msg)
		}
		obj = map[string]any{"selected_paths": arr, "path_explanations": map[string]any{}}
	}

	selected, rationale, rejected := parseSelection(obj, pathSet.Paths)
	if len(selected) == 0 {
		return model.SelectionResult{}, model.NewSelectionFailed(model.CauseEmptyResult, errEmptySelection, "parse selector response")
	}

	costUSD := s.calc.Chat(s.modelID, resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return model.SelectionResult{
		Selected:         selected,
		Rationale:        rationale,
		RejectedCount:    len(rejected),
		RejectedPaths:    rejected,
		PromptText:       prompt,
		ModelID:          s.modelID,
		TokensIn:         resp.Usage.InputTokens,
		TokensOut:        resp.Usage.OutputTokens,
		CostUSD:          costUSD,
		SelectionSeconds: time.Since(start).Seconds(),
	}, nil
}

// parseSelection validates selected_paths against the candidate set,
// dropping (and reporting as rejected) anything not in candidates, and
// defaults missing rationale entries to defaultRationale.
func parseSelection(obj map[string]any, candidates []string) (selected []string, rationale map[string]string, rejected []string) {
	candidateSet := make(map[string]bool, len(candidates))
	for _, p := range candidates {
		candidateSet[p] = true
	}

	rationale = make(map[string]string)
	explanations, _ := obj["path_explanations"].(map[string]any)

	raw, _ := obj["selected_paths"].([]any)
	for _, item := range raw {
		p, ok := item.(string)
		if !ok {
			continue
		}
		if !candidateSet[p] {
			rejected = append(rejected, p)
			continue
		}
		selected = append(selected, p)
		if explanations != nil {
			if text, ok := explanations[p].(string); ok && text != "" {
				rationale[p] = text
				continue
			}
		}
		rationale[p] = defaultRationale
	}

	return selected, rationale, rejected
}
