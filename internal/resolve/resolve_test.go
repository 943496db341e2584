package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/sells-group/theodore-core/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNameResolver struct {
	url   string
	found bool
	err   error
}

func (f fakeNameResolver) Lookup(_ context.Context, _ string) (string, bool, error) {
	return f.url, f.found, f.err
}

func alwaysResolves(_ context.Context, _ string) ([]string, error) {
	return []string{"93.184.216.34"}, nil
}

func neverResolves(_ context.Context, _ string) ([]string, error) {
	return nil, errors.New("no such host")
}

func TestResolveURL_ExplicitScheme(t *testing.T) {
	r := New(nil)
	r.lookupHost = alwaysResolves

	got, err := r.Resolve(context.Background(), model.SeedInput{Raw: "https://Acme.com/pricing", Kind: model.SeedKindURL})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", got.BaseURL)
	assert.Equal(t, "Acme", got.DisplayName)
}

func TestResolveURL_AddsSchemeWhenMissing(t *testing.T) {
	r := New(nil)
	r.lookupHost = alwaysResolves

	got, err := r.Resolve(context.Background(), model.SeedInput{Raw: "acme.com", Kind: model.SeedKindURL})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", got.BaseURL)
}

func TestResolveURL_AddsWWWWhenBareHostDoesNotResolve(t *testing.T) {
	r := New(nil)
	r.lookupHost = neverResolves

	got, err := r.Resolve(context.Background(), model.SeedInput{Raw: "https://acme.io", Kind: model.SeedKindURL})
	require.NoError(t, err)
	assert.Equal(t, "https://www.acme.io", got.BaseURL)
}

func TestResolveURL_PreservesPort(t *testing.T) {
	r := New(nil)
	r.lookupHost = alwaysResolves

	got, err := r.Resolve(context.Background(), model.SeedInput{Raw: "http://127.0.0.1:8080", Kind: model.SeedKindURL})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", got.BaseURL)
}

func TestResolveURL_NoHost(t *testing.T) {
	r := New(nil)
	r.lookupHost = alwaysResolves

	_, err := r.Resolve(context.Background(), model.SeedInput{Raw: "https:///path", Kind: model.SeedKindURL})
	var target *model.SeedResolutionFailed
	assert.ErrorAs(t, err, &target)
}

func TestResolveName_Success(t *testing.T) {
	r := New(fakeNameResolver{url: "https://acme.com", found: true})
	r.lookupHost = alwaysResolves

	got, err := r.Resolve(context.Background(), model.SeedInput{Raw: "Acme", Kind: model.SeedKindName})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", got.BaseURL)
	assert.Equal(t, "Acme", got.DisplayName)
}

func TestResolveName_NotFound(t *testing.T) {
	r := New(fakeNameResolver{found: false})

	_, err := r.Resolve(context.Background(), model.SeedInput{Raw: "Nonexistent Co", Kind: model.SeedKindName})
	var target *model.SeedResolutionFailed
	assert.ErrorAs(t, err, &target)
}

func TestResolveName_NoResolverConfigured(t *testing.T) {
	r := New(nil)

	_, err := r.Resolve(context.Background(), model.SeedInput{Raw: "Some Company", Kind: model.SeedKindName})
	assert.Error(t, err)
}

func TestResolve_EmptySeed(t *testing.T) {
	r := New(nil)
	_, err := r.Resolve(context.Background(), model.SeedInput{Raw: "   "})
	assert.Error(t, err)
}

func TestClassify_InfersKindWhenUnset(t *testing.T) {
	r := New(fakeNameResolver{url: "https://acme.com", found: true})
	r.lookupHost = alwaysResolves

	got, err := r.Resolve(context.Background(), model.SeedInput{Raw: "acme.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", got.BaseURL)

	got, err = r.Resolve(context.Background(), model.SeedInput{Raw: "Acme Robotics"})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", got.BaseURL)
}
