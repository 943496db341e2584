// Package distill implements the Field Distiller (C5): it calls the
// chat-completions provider once with the aggregated crawl text and the
// fixed field schema, then coerces the JSON response into a typed
// FieldRecord (spec.md §4.5).
package distill

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/theodore-core/internal/cost"
	"github.com/sells-group/theodore-core/internal/jsonblock"
	"github.com/sells-group/theodore-core/internal/model"
	"github.com/sells-group/theodore-core/internal/resilience"
	"github.com/sells-group/theodore-core/pkg/llmrouter"
)

// Distiller is the Field Distiller (C5).
type Distiller struct {
	client  llmrouter.Client
	calc    *cost.Calculator
	modelID string
}

// New builds a Distiller using the given chat-completions client, cost
// calculator, and model id.
func New(client llmrouter.Client, calc *cost.Calculator, modelID string) *Distiller {
	return &Distiller{client: client, calc: calc, modelID: modelID}
}

// Options configures one Distill call.
type Options struct {
	Temperature     float64
	MaxTokens       int
	MinFieldsFilled int
}

// Distill renders the prompt for companyName and aggregatedText, issues
// the single chat-completions call, and coerces the result into a
// DistillationResult. It fails with *model.DistillationFailed on
// transport, HTTP-status, parse errors, or when fewer than
// opts.MinFieldsFilled schema fields land (spec.md §4.5, §7).
func (d *Distiller) Distill(ctx context.Context, companyName, aggregatedText string, opts Options) (model.DistillationResult, error) {
	start := time.Now()

	prompt := BuildPrompt(companyName, aggregatedText)

	resp, err := d.client.CreateChatCompletion(ctx, llmrouter.ChatRequest{
		Model:       d.modelID,
		Prompt:      prompt,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		cause, _ := resilience.ClassifyLLMError(err)
		return model.DistillationResult{}, model.NewDistillationFailed(cause, err, "call distiller")
	}

	obj, err := jsonblock.ParseObject(resp.Content)
	if err != nil {
		return model.DistillationResult{}, model.NewDistillationFailed(model.CauseParse, err, "parse distiller response")
	}

	rec, filledCount, dropped := coerce(obj)

	minFields := opts.MinFieldsFilled
	if minFields <= 0 {
		minFields = 5
	}
	if filledCount < minFields {
		return model.DistillationResult{}, model.NewDistillationFailed(model.CauseSchemaUnderfilled, errUnderfilled, "parse distiller response")
	}

	costUSD := d.calc.Chat(d.modelID, resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return model.DistillationResult{
		Fields:         rec,
		FilledCount:    filledCount,
		DroppedKeys:    dropped,
		PromptText:     prompt,
		ModelID:        d.modelID,
		TokensIn:       resp.Usage.InputTokens,
		TokensOut:      resp.Usage.OutputTokens,
		CostUSD:        costUSD,
		DistillSeconds: time.Since(start).Seconds(),
	}, nil
}

// coerce walks the fixed schema and sets each field on a FieldRecord
// from obj, dropping (and recording) keys present but not coercible to
// their declared type. Missing keys are left null.
func coerce(obj map[string]any) (rec model.FieldRecord, filledCount int, dropped []string) {
	for _, spec := range model.Schema() {
		v, present := obj[spec.Name]
		if !present || v == nil {
			continue
		}
		if spec.Set(&rec, v) {
			filledCount++
		} else {
			dropped = append(dropped, spec.Name)
			zap.L().Warn("distill: dropping field with type mismatch",
				zap.String("field", spec.Name), zap.String("type", string(spec.Type)))
		}
	}
	return rec, filledCount, dropped
}
