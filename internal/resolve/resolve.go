// Package resolve implements the Seed Resolver (C1): it maps a
// caller-supplied name or URL to a canonical base URL and display name.
package resolve

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/sells-group/theodore-core/internal/model"
)

// NameResolver looks up a bare company name against an external
// name→URL collaborator (spec.md §6). It is injected so callers can
// supply a directory, search API, or static map without this package
// depending on any of them.
type NameResolver interface {
	Lookup(ctx context.Context, name string) (rawURL string, found bool, err error)
}

// Resolver is the Seed Resolver (C1).
type Resolver struct {
	names NameResolver
	// hostResolveTimeout bounds the best-effort DNS probe used to decide
	// whether a bare host needs a www. prefix (spec.md §4.1).
	hostResolveTimeout time.Duration
	// lookupHost is net.DefaultResolver.LookupHost by default; tests
	// substitute a deterministic stand-in so DNS availability in the
	// test environment never affects the result.
	lookupHost func(ctx context.Context, host string) ([]string, error)
}

// New builds a Resolver. names may be nil if the caller never expects
// bare-name seeds; a name seed will then fail immediately.
func New(names NameResolver) *Resolver {
	return &Resolver{
		names:              names,
		hostResolveTimeout: 2 * time.Second,
		lookupHost:         net.DefaultResolver.LookupHost,
	}
}

// Resolve turns seed into a ResolvedSeed, or fails with
// *model.SeedResolutionFailed.
func (r *Resolver) Resolve(ctx context.Context, seed model.SeedInput) (model.ResolvedSeed, error) {
	raw := strings.TrimSpace(seed.Raw)
	if raw == "" {
		return model.ResolvedSeed{}, model.NewSeedResolutionFailed(
			errEmptySeed, "resolve seed")
	}

	kind := seed.Kind
	if kind == "" {
		kind = classify(raw)
	}

	switch kind {
	case model.SeedKindURL:
		return r.resolveURL(ctx, raw)
	case model.SeedKindName:
		return r.resolveName(ctx, raw)
	default:
		return r.resolveURL(ctx, raw)
	}
}

func classify(raw string) model.SeedKind {
	if strings.Contains(raw, "://") {
		return model.SeedKindURL
	}
	if strings.Contains(raw, " ") {
		return model.SeedKindName
	}
	if strings.Contains(raw, ".") {
		return model.SeedKindURL
	}
	return model.SeedKindName
}

func (r *Resolver) resolveName(ctx context.Context, name string) (model.ResolvedSeed, error) {
	if r.names == nil {
		return model.ResolvedSeed{}, model.NewSeedResolutionFailed(
			errNoNameResolver, "resolve seed by name")
	}
	rawURL, found, err := r.names.Lookup(ctx, name)
	if err != nil {
		return model.ResolvedSeed{}, model.NewSeedResolutionFailed(err, "name lookup")
	}
	if !found {
		return model.ResolvedSeed{}, model.NewSeedResolutionFailed(
			errNameNotFound, "name lookup")
	}
	resolved, err := r.resolveURL(ctx, rawURL)
	if err != nil {
		return model.ResolvedSeed{}, err
	}
	resolved.DisplayName = name
	return resolved, nil
}

func (r *Resolver) resolveURL(ctx context.Context, raw string) (model.ResolvedSeed, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return model.ResolvedSeed{}, model.NewSeedResolutionFailed(err, "parse seed URL")
	}
	if u.Host == "" {
		return model.ResolvedSeed{}, model.NewSeedResolutionFailed(
			errNoHost, "parse seed URL")
	}

	host := strings.ToLower(u.Hostname())
	if !strings.HasPrefix(host, "www.") && !r.hostResolves(ctx, host) {
		host = "www." + host
	}

	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}

	hostport := host
	if port := u.Port(); port != "" {
		hostport = host + ":" + port
	}

	baseURL := scheme + "://" + hostport
	return model.ResolvedSeed{
		BaseURL:     baseURL,
		DisplayName: displayNameFromHost(host),
	}, nil
}

// hostResolves does a best-effort DNS lookup; any failure (including
// timeout) is treated as "does not resolve" so the caller falls back to
// the www.-prefixed host, per spec.md §4.1.
func (r *Resolver) hostResolves(ctx context.Context, host string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.hostResolveTimeout)
	defer cancel()
	_, err := r.lookupHost(ctx, host)
	return err == nil
}

func displayNameFromHost(host string) string {
	name := strings.TrimPrefix(host, "www.")
	if idx := strings.Index(name, "."); idx > 0 {
		name = name[:idx]
	}
	if name == "" {
		return host
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
