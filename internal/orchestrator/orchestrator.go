// Package orchestrator threads the five pipeline components — C1
// through C5 — into the single Research call spec.md §6 exposes,
// measuring per-phase duration, emitting progress events, and
// converting context cancellation/deadline into the typed Cancelled
// and Timeout errors from spec.md §7.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/theodore-core/internal/config"
	"github.com/sells-group/theodore-core/internal/cost"
	"github.com/sells-group/theodore-core/internal/discover"
	"github.com/sells-group/theodore-core/internal/distill"
	"github.com/sells-group/theodore-core/internal/extract"
	"github.com/sells-group/theodore-core/internal/model"
	"github.com/sells-group/theodore-core/internal/pathselect"
	"github.com/sells-group/theodore-core/internal/resolve"
	"github.com/sells-group/theodore-core/pkg/llmrouter"
)

// Options enumerates the per-invocation overrides spec.md §6 names.
// A zero-valued field falls back to the Orchestrator's configured
// default for that setting. MinSelectionConfidence is accepted but not
// read: the selector prompt carries no confidence threshold, and the
// configured selection.min_confidence is not used either.
type Options struct {
	Concurrency             int
	MaxContentPerPage       int
	SelectorTimeoutSeconds  int
	DistillerTimeoutSeconds int
	PageFetchTimeoutSeconds int
	DiscoveryTimeoutSeconds int
	MinSelectionConfidence  float64
	ProgressObserver        func(model.PhaseEvent)
}

// Orchestrator wires the five phase components together behind the
// single Research entry point.
type Orchestrator struct {
	cfg       *config.Config
	resolver  *resolve.Resolver
	selector  *pathselect.Selector
	distiller *distill.Distiller
}

// New builds an Orchestrator. names resolves a bare company name to a
// candidate URL for C1 (see resolve.NameResolver); llm is the
// chat-completions client shared by C3 and C5.
func New(cfg *config.Config, names resolve.NameResolver, llm llmrouter.Client) *Orchestrator {
	calc := cost.NewCalculator(cost.RatesFromConfig(cost.PricingConfig{Models: convertPricing(cfg.Pricing.Models)}))
	return &Orchestrator{
		cfg:       cfg,
		resolver:  resolve.New(names),
		selector:  pathselect.New(llm, calc, cfg.Provider.ModelID),
		distiller: distill.New(llm, calc, cfg.Provider.ModelID),
	}
}

func convertPricing(models map[string]config.ModelPricing) map[string]cost.ModelPricing {
	out := make(map[string]cost.ModelPricing, len(models))
	for id, p := range models {
		out[id] = cost.ModelPricing{InputPerMTok: p.InputPerMTok, OutputPerMTok: p.OutputPerMTok}
	}
	return out
}

// Research runs C1 through C5 sequentially for seed and returns the
// assembled CompanyIntelligence. Any phase failure aborts the run; a
// cancelled context surfaces as *model.Cancelled naming the highest
// phase reached.
func (o *Orchestrator) Research(ctx context.Context, seed model.SeedInput, opts Options) (model.CompanyIntelligence, error) {
	emit := opts.ProgressObserver
	if emit == nil {
		emit = func(model.PhaseEvent) {}
	}

	discoveryTimeout := orDefault(opts.DiscoveryTimeoutSeconds, o.cfg.Discovery.SubTimeoutSecs)
	selectorTimeout := orDefault(opts.SelectorTimeoutSeconds, o.cfg.Selection.TimeoutSecs)
	distillerTimeout := orDefault(opts.DistillerTimeoutSeconds, o.cfg.Distill.TimeoutSecs)
	pageFetchTimeout := orDefault(opts.PageFetchTimeoutSeconds, o.cfg.Extract.PerPageTimeoutSecs)
	concurrency := orDefault(opts.Concurrency, o.cfg.Extract.WorkerCount)
	maxContentPerPage := orDefault(opts.MaxContentPerPage, o.cfg.Extract.PerPageCharCap)

	var intel model.CompanyIntelligence
	intel.TraceID = uuid.New().String()
	intel.Seed = seed

	// C1 — Seed Resolution
	resolved, dur, err := runPhase(ctx, model.PhaseSeedResolution, emit, func(ctx context.Context) (model.ResolvedSeed, error) {
		return o.resolver.Resolve(ctx, seed)
	})
	if err != nil {
		return model.CompanyIntelligence{}, wrapCancellation(ctx, model.PhaseSeedResolution, err)
	}
	intel.ResolvedSeed = resolved
	intel.ResolvedSeconds = dur.Seconds()

	// C2 — Path Discovery
	discoverer := discover.New(time.Duration(discoveryTimeout)*time.Second, o.cfg.Discovery.MaxPaths)
	pathSet, _, err := runPhase(ctx, model.PhaseDiscovery, emit, func(ctx context.Context) (model.PathSet, error) {
		return discoverer.Discover(ctx, resolved)
	})
	if err != nil {
		return model.CompanyIntelligence{}, wrapCancellation(ctx, model.PhaseDiscovery, err)
	}
	intel.PathSet = pathSet

	// C3 — Path Selection
	selCtx, selCancel := context.WithTimeout(ctx, time.Duration(selectorTimeout)*time.Second)
	selection, _, err := runPhase(selCtx, model.PhaseSelection, emit, func(ctx context.Context) (model.SelectionResult, error) {
		return o.selector.Select(ctx, resolved.DisplayName, pathSet, pathselect.Options{
			Temperature: o.cfg.Selection.Temperature,
			MaxTokens:   o.cfg.Selection.MaxTokens,
		})
	})
	selCancel()
	if err != nil {
		if errors.Is(selCtx.Err(), context.DeadlineExceeded) {
			return model.CompanyIntelligence{}, model.NewTimeout(model.PhaseSelection, err)
		}
		return model.CompanyIntelligence{}, wrapCancellation(ctx, model.PhaseSelection, err)
	}
	if max := o.cfg.Selection.MaxSelected; max > 0 && len(selection.Selected) > max {
		selection.Selected = selection.Selected[:max]
	}
	intel.Selection = selection

	// C4 — Parallel Extraction
	extractor := extract.New(extract.Config{
		WorkerCount:       concurrency,
		PerPageTimeout:    time.Duration(pageFetchTimeout) * time.Second,
		MaxRedirects:      o.cfg.Extract.MaxRedirects,
		MaxBodyBytes:      int64(o.cfg.Extract.MaxBodyBytes),
		PerPageCharCap:    maxContentPerPage,
		FallbackThreshold: o.cfg.Extract.FallbackThreshold,
	})
	crawl, _, err := runPhase(ctx, model.PhaseExtraction, emit, func(ctx context.Context) (model.CrawlResult, error) {
		return extractor.Extract(ctx, resolved.BaseURL, selection.Selected)
	})
	if err != nil {
		return model.CompanyIntelligence{}, wrapCancellation(ctx, model.PhaseExtraction, err)
	}
	intel.Crawl = crawl

	// C5 — Field Distillation
	distillCtx, distillCancel := context.WithTimeout(ctx, time.Duration(distillerTimeout)*time.Second)
	aggregatedText := truncate(crawl.AggregatedText, o.cfg.Distill.AggregatedTextCharCap)
	distillation, _, err := runPhase(distillCtx, model.PhaseDistillation, emit, func(ctx context.Context) (model.DistillationResult, error) {
		return o.distiller.Distill(ctx, resolved.DisplayName, aggregatedText, distill.Options{
			Temperature:     o.cfg.Distill.Temperature,
			MaxTokens:       o.cfg.Distill.MaxTokens,
			MinFieldsFilled: o.cfg.Distill.MinFieldsFilled,
		})
	})
	distillCancel()
	if err != nil {
		if errors.Is(distillCtx.Err(), context.DeadlineExceeded) {
			return model.CompanyIntelligence{}, model.NewTimeout(model.PhaseDistillation, err)
		}
		return model.CompanyIntelligence{}, wrapCancellation(ctx, model.PhaseDistillation, err)
	}
	intel.Distillation = distillation

	intel.Totals = rollUp(intel)
	intel.CompletedAt = time.Now()

	return intel, nil
}

// rollUp computes the metadata formulas from spec.md §4.5/§3.3.
func rollUp(intel model.CompanyIntelligence) model.Totals {
	tokens := intel.Selection.TokensIn + intel.Selection.TokensOut + intel.Distillation.TokensIn + intel.Distillation.TokensOut
	return model.Totals{
		Seconds: intel.ResolvedSeconds + intel.PathSet.DiscoverySeconds + intel.Selection.SelectionSeconds + intel.Crawl.ExtractionSeconds + intel.Distillation.DistillSeconds,
		CostUSD: intel.Selection.CostUSD + intel.Distillation.CostUSD,
		Tokens:  tokens,
	}
}

// runPhase executes fn, emitting a PhaseEvent on completion (success
// or failure) with the measured duration.
func runPhase[T any](ctx context.Context, phase model.Phase, emit func(model.PhaseEvent), fn func(context.Context) (T, error)) (T, time.Duration, error) {
	started := time.Now()
	result, err := fn(ctx)
	dur := time.Since(started)

	status := model.PhaseStatusOK
	detail := ""
	if err != nil {
		status = model.PhaseStatusFailed
		detail = err.Error()
		zap.L().Error("orchestrator: phase failed", zap.String("phase", string(phase)), zap.Duration("duration", dur), zap.Error(err))
	} else {
		zap.L().Info("orchestrator: phase complete", zap.String("phase", string(phase)), zap.Duration("duration", dur))
	}

	emit(model.PhaseEvent{Phase: phase, Status: status, Started: started, Duration: dur, Detail: detail, Err: err})
	return result, dur, err
}

// wrapCancellation converts a phase error into *model.Cancelled when
// the context was cancelled, leaving other errors (already typed
// *model.SeedResolutionFailed, *model.DiscoveryFailed, and so on)
// unchanged.
func wrapCancellation(ctx context.Context, phase model.Phase, err error) error {
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return model.NewCancelled(phase, err)
	}
	return err
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
