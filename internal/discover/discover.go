// Package discover implements the Path Discoverer (C2): it produces a
// de-duplicated, order-preserving path universe from robots.txt,
// sitemap expansion, and a home-page navigation scan, running the three
// sub-sources concurrently the way the teacher's pipeline runs its
// Phase-1 sub-phases with errgroup.WithContext.
package discover

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/sells-group/theodore-core/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	userAgent    = "Mozilla/5.0 (compatible; TheodoreBot/1.0)"
	maxBodyBytes = 2 << 20 // 2 MiB, generous for robots/sitemap/home-page documents

	// defaultRequestsPerSecond paces this Discoverer's outbound robots/
	// sitemap/navigation requests against the target host, independent
	// of the per-sub-source timeout, the way fetcher.HTTPOptions paces
	// requests per rate.Limiter in the teacher.
	defaultRequestsPerSecond = 5
)

var errNonSuccessStatus = errors.New("discover: non-2xx response")

// Discoverer is the Path Discoverer (C2).
type Discoverer struct {
	client     *http.Client
	subTimeout time.Duration
	maxPaths   int
}

// New builds a Discoverer. subTimeout bounds each of the three
// sub-sources individually (spec.md §4.2, §5); maxPaths caps the
// returned set size (0 means unbounded). Outbound requests across all
// three sub-sources share one rate.Limiter so discovery never bursts
// the target host beyond defaultRequestsPerSecond.
func New(subTimeout time.Duration, maxPaths int) *Discoverer {
	limiter := rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultRequestsPerSecond)
	return &Discoverer{
		client: &http.Client{
			Timeout:   subTimeout + 2*time.Second,
			Transport: &rateLimitedTransport{limiter: limiter, base: http.DefaultTransport},
		},
		subTimeout: subTimeout,
		maxPaths:   maxPaths,
	}
}

// rateLimitedTransport paces outbound requests through limiter.Wait
// before delegating to base, the same pattern as the teacher's
// fetcher.HTTPOptions.RateLimiters but applied uniformly to one host's
// client rather than keyed per-domain.
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

type sourceResult struct {
	source model.PathSource
	paths  []string
	dur    time.Duration
}

// Discover runs the three sub-discoveries concurrently and merges them
// preserving first-seen order. It fails with *model.DiscoveryFailed
// only if all three sub-sources produce nothing.
func (d *Discoverer) Discover(ctx context.Context, seed model.ResolvedSeed) (model.PathSet, error) {
	start := time.Now()

	baseURL, err := url.Parse(seed.BaseURL)
	if err != nil || baseURL.Host == "" {
		return model.PathSet{}, model.NewDiscoveryFailed(err, "parse base URL")
	}
	baseHost := baseURL.Host

	results := make([]sourceResult, 3)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sub, cancel := context.WithTimeout(gctx, d.subTimeout)
		defer cancel()
		t0 := time.Now()

		directives, _, err := fetchRobots(sub, d.client, seed.BaseURL)
		var paths []string
		if err == nil {
			paths = robotsCandidatePaths(directives)
		}
		results[0] = sourceResult{source: model.PathSourceRobots, paths: dedupe(paths), dur: time.Since(t0)}
		return nil
	})

	g.Go(func() error {
		sub, cancel := context.WithTimeout(gctx, d.subTimeout)
		defer cancel()
		t0 := time.Now()

		sitemapURLs := []string{seed.BaseURL + "/sitemap.xml"}
		if directives, fromRobots, err := fetchRobots(sub, d.client, seed.BaseURL); err == nil && len(fromRobots) > 0 {
			sitemapURLs = append(sitemapURLs, directives.Sitemaps...)
		}
		paths := expandSitemaps(sub, d.client, baseHost, sitemapURLs)
		results[1] = sourceResult{source: model.PathSourceSitemap, paths: paths, dur: time.Since(t0)}
		return nil
	})

	g.Go(func() error {
		sub, cancel := context.WithTimeout(gctx, d.subTimeout)
		defer cancel()
		t0 := time.Now()
		paths := scanNavigation(sub, d.client, seed.BaseURL, baseHost)
		results[2] = sourceResult{source: model.PathSourceNavigation, paths: paths, dur: time.Since(t0)}
		return nil
	})

	// Sub-discoveries never return an error to the group; each handles
	// its own failures by recording an empty result so one slow/broken
	// source cannot fail the others (spec.md §4.2).
	_ = g.Wait()

	pathSet := mergePathSets(results)
	pathSet.DiscoverySeconds = time.Since(start).Seconds()

	if len(pathSet.Paths) == 0 {
		return model.PathSet{}, model.NewDiscoveryFailed(errAllSourcesEmpty, "discover paths")
	}
	if d.maxPaths > 0 && len(pathSet.Paths) > d.maxPaths {
		pathSet.Paths = pathSet.Paths[:d.maxPaths]
	}

	return pathSet, nil
}

var errAllSourcesEmpty = errors.New("all discovery sub-sources returned zero paths")

func mergePathSets(results []sourceResult) model.PathSet {
	seen := make(map[string]bool)
	sources := make(map[string]model.PathSource)
	timings := make(map[string]float64)
	var ordered []string

	for _, r := range results {
		timings[string(r.source)] = r.dur.Seconds()
		for _, p := range r.paths {
			if seen[p] {
				continue
			}
			seen[p] = true
			sources[p] = r.source
			ordered = append(ordered, p)
		}
	}

	return model.PathSet{
		Paths:         ordered,
		Sources:       sources,
		SourceTimings: timings,
	}
}

// normalizePath lowercases nothing (paths are case-sensitive on most
// servers), resolves ".." segments, and strips a trailing slash except
// for the root path, per spec.md §4.2.
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	cleaned := path.Clean(p)
	if cleaned != "/" {
		cleaned = strings.TrimSuffix(cleaned, "/")
	}
	return cleaned
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		np := normalizePath(p)
		if seen[np] {
			continue
		}
		seen[np] = true
		out = append(out, np)
	}
	return out
}
