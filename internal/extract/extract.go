// Package extract implements the Parallel Extractor (C4): it fetches
// every selected path under a bounded-concurrency worker pool, runs a
// primary readable-text extractor with a structural fallback per page,
// and aggregates the results in input order (spec.md §4.4).
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/theodore-core/internal/model"
	"github.com/sells-group/theodore-core/internal/resilience"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 TheodoreIntelligence/1.0"

// defaultFetchesPerSecond paces this Extractor's per-page GETs against
// the single target host, independent of worker concurrency, the same
// way the teacher's fetcher.HTTPOptions.RateLimiters paces requests
// per rate.Limiter rather than relying on worker-pool size alone.
const defaultFetchesPerSecond = 8

// Extractor is the Parallel Extractor (C4).
type Extractor struct {
	client            *http.Client
	workerCount       int
	perPageTimeout    time.Duration
	maxBodyBytes      int64
	perPageCharCap    int
	fallbackThreshold int
}

// rateLimitedTransport paces outbound requests through limiter.Wait
// before delegating to base (see discover.rateLimitedTransport for the
// same pattern applied to C2).
type rateLimitedTransport struct {
	limiter *rate.Limiter
	base    http.RoundTripper
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// Config configures an Extractor. Zero values fall back to the
// defaults named in spec.md §4.4.
type Config struct {
	WorkerCount       int
	PerPageTimeout    time.Duration
	MaxRedirects      int
	MaxBodyBytes      int64
	PerPageCharCap    int
	FallbackThreshold int
}

// New builds an Extractor from cfg, applying spec defaults for any
// zero field.
func New(cfg Config) *Extractor {
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = 10
	}
	perPageTimeout := cfg.PerPageTimeout
	if perPageTimeout <= 0 {
		perPageTimeout = 30 * time.Second
	}
	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 5
	}
	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	perPageCharCap := cfg.PerPageCharCap
	if perPageCharCap <= 0 {
		perPageCharCap = 15000
	}
	fallbackThreshold := cfg.FallbackThreshold
	if fallbackThreshold <= 0 {
		fallbackThreshold = 100
	}

	client := &http.Client{
		Timeout: perPageTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
		Transport: &rateLimitedTransport{
			limiter: rate.NewLimiter(rate.Limit(defaultFetchesPerSecond), defaultFetchesPerSecond),
			base:    http.DefaultTransport,
		},
	}

	return &Extractor{
		client:            client,
		workerCount:       workerCount,
		perPageTimeout:    perPageTimeout,
		maxBodyBytes:      maxBodyBytes,
		perPageCharCap:    perPageCharCap,
		fallbackThreshold: fallbackThreshold,
	}
}

// Extract fetches baseURL+path for every entry of paths under a pool
// of e.workerCount workers and returns the per-page results in input
// order, plus the aggregated text. It fails with *model.ExtractionFailed
// only when every page fails (spec.md §4.4).
func (e *Extractor) Extract(ctx context.Context, baseURL string, paths []string) (model.CrawlResult, error) {
	start := time.Now()

	results := make([]model.PageResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			results[i] = e.fetchPage(gctx, baseURL, p)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.CrawlResult{}, model.NewExtractionFailed(err, "extract pages")
	}

	crawl := aggregate(results, paths)
	crawl.ExtractionSeconds = time.Since(start).Seconds()

	// A caller cancellation can land after some pages already completed
	// successfully; report it explicitly rather than letting partial
	// success read as a clean phase result (spec.md §6: Cancelled must
	// name the highest phase actually reached).
	if err := ctx.Err(); err != nil {
		return crawl, fmt.Errorf("extract: %w", err)
	}

	if crawl.SuccessCount == 0 {
		return crawl, model.NewExtractionFailed(allPageErrors(results), "extract pages")
	}

	return crawl, nil
}

// allPageErrors joins every page's recorded failure into one error, so
// the zero-success ExtractionFailed carries each per-page cause rather
// than a single generic message (spec.md §8: "error carries N per-page
// ... errors").
func allPageErrors(results []model.PageResult) error {
	errs := make([]error, 0, len(results))
	for _, r := range results {
		if r.Extractor == model.ExtractorNone {
			errs = append(errs, fmt.Errorf("%s: %s", r.URL, r.Error))
		}
	}
	if len(errs) == 0 {
		return errAllPagesFailed
	}
	return errors.Join(errs...)
}

// fetchPage runs the per-page procedure from spec.md §4.4 steps 1-6.
// It never returns an error: every outcome, including transport and
// HTTP-status failures, is captured in the returned PageResult so that
// one bad page cannot abort the worker pool.
func (e *Extractor) fetchPage(ctx context.Context, baseURL, path string) model.PageResult {
	start := time.Now()
	url := baseURL + path
	result := model.PageResult{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Extractor = model.ExtractorNone
		result.Error = err.Error()
		result.FetchSeconds = time.Since(start).Seconds()
		return result
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		result.Extractor = model.ExtractorNone
		result.Error = err.Error()
		result.FetchSeconds = time.Since(start).Seconds()
		zap.L().Debug("extract: fetch failed", zap.String("url", url), zap.Error(err), zap.Bool("transient", resilience.IsTransient(err)))
		return result
	}
	defer resp.Body.Close()

	result.HTTPStatus = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBodyBytes))
	if err != nil {
		result.Extractor = model.ExtractorNone
		result.Error = err.Error()
		result.FetchSeconds = time.Since(start).Seconds()
		return result
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || len(body) == 0 {
		result.Extractor = model.ExtractorNone
		result.Error = fmt.Sprintf("http status %d", resp.StatusCode)
		result.FetchSeconds = time.Since(start).Seconds()
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			zap.L().Debug("extract: transient http status, not retried (single-attempt per page)", zap.String("url", url), zap.Int("status", resp.StatusCode))
		}
		return result
	}

	html := string(body)

	if title, text, ok := extractReadable(url, html); ok && len(strings.TrimSpace(text)) >= e.fallbackThreshold {
		result.OK = true
		result.Extractor = model.ExtractorTrafilatura
		result.Title = title
		result.Text = truncate(text, e.perPageCharCap)
		result.ByteCount = len(result.Text)
		result.FetchSeconds = time.Since(start).Seconds()
		return result
	}

	if text, ok := extractStructural(html); ok && len(strings.TrimSpace(text)) >= e.fallbackThreshold {
		result.OK = true
		result.Extractor = model.ExtractorStructuralFallback
		result.Text = truncate(text, e.perPageCharCap)
		result.ByteCount = len(result.Text)
		result.FetchSeconds = time.Since(start).Seconds()
		return result
	}

	result.Extractor = model.ExtractorNone
	result.Error = "no extractable text"
	result.FetchSeconds = time.Since(start).Seconds()
	return result
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// aggregate builds a CrawlResult from per-page results in input order,
// concatenating ok pages with a `=== path ===` delimiter (spec.md §4.4).
func aggregate(results []model.PageResult, paths []string) model.CrawlResult {
	var sb strings.Builder
	successCount, fallbackCount, failureCount := 0, 0, 0

	for i, r := range results {
		if r.Extractor != model.ExtractorNone {
			successCount++
			if r.Extractor == model.ExtractorStructuralFallback {
				fallbackCount++
			}
			fmt.Fprintf(&sb, "\n\n=== %s ===\n\n", paths[i])
			sb.WriteString(r.Text)
		} else {
			failureCount++
		}
	}

	aggregated := sb.String()

	return model.CrawlResult{
		Pages:          results,
		AggregatedText: aggregated,
		TotalTextBytes: len(aggregated),
		SuccessCount:   successCount,
		FallbackCount:  fallbackCount,
		FailureCount:   failureCount,
	}
}
