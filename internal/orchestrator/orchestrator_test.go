package orchestrator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sells-group/theodore-core/internal/config"
	"github.com/sells-group/theodore-core/internal/model"
	"github.com/sells-group/theodore-core/pkg/llmrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopNames struct{}

func (noopNames) Lookup(context.Context, string) (string, bool, error) { return "", false, nil }

func testConfig(modelID string) *config.Config {
	cfg := &config.Config{}
	cfg.Provider.ModelID = modelID
	cfg.Discovery.SubTimeoutSecs = 5
	cfg.Discovery.MaxPaths = 50
	cfg.Selection.TimeoutSecs = 10
	cfg.Selection.MaxTokens = 4000
	cfg.Selection.Temperature = 0.1
	cfg.Selection.MaxSelected = 10
	cfg.Extract.WorkerCount = 4
	cfg.Extract.PerPageTimeoutSecs = 5
	cfg.Extract.MaxRedirects = 5
	cfg.Extract.MaxBodyBytes = 1 << 20
	cfg.Extract.PerPageCharCap = 15000
	cfg.Extract.FallbackThreshold = 50
	cfg.Distill.TimeoutSecs = 10
	cfg.Distill.MaxTokens = 8000
	cfg.Distill.Temperature = 0.1
	cfg.Distill.MinFieldsFilled = 2
	cfg.Distill.AggregatedTextCharCap = 100000
	return cfg
}

func TestResearch_FullRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><article><p>`+repeatWords("Acme is a company that makes widgets for everyone.", 20)+`</p></article></body></html>`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/about">About</a></body></html>`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	fake := &llmrouter.FakeClient{Responses: []llmrouter.ChatResponse{
		{
			Content: `{"selected_paths": ["/about"], "path_explanations": {"/about": "company info"}}`,
			Usage:   llmrouter.Usage{InputTokens: 500, OutputTokens: 100},
		},
		{
			Content: `{"company_name": "Acme", "description": "Acme makes widgets.", "industry": "Manufacturing"}`,
			Usage:   llmrouter.Usage{InputTokens: 1000, OutputTokens: 200},
		},
	}}

	o := New(testConfig("openai/gpt-4o-mini"), noopNames{}, fake)

	var events []model.PhaseEvent
	seed := model.SeedInput{Raw: srv.URL, Kind: model.SeedKindURL}
	intel, err := o.Research(context.Background(), seed, Options{
		ProgressObserver: func(e model.PhaseEvent) { events = append(events, e) },
	})
	require.NoError(t, err)

	assert.NotEmpty(t, intel.TraceID)
	assert.Equal(t, []string{"/about"}, intel.Selection.Selected)
	require.Len(t, intel.Crawl.Pages, 1)
	assert.True(t, intel.Crawl.Pages[0].OK)
	require.NotNil(t, intel.Distillation.Fields.Identity.CompanyName)
	assert.Equal(t, "Acme", *intel.Distillation.Fields.Identity.CompanyName)

	assert.Equal(t, intel.Selection.CostUSD+intel.Distillation.CostUSD, intel.Totals.CostUSD)
	assert.Equal(t, intel.Selection.TokensIn+intel.Selection.TokensOut+intel.Distillation.TokensIn+intel.Distillation.TokensOut, intel.Totals.Tokens)
	assert.Len(t, events, 5)
	for _, e := range events {
		assert.Equal(t, model.PhaseStatusOK, e.Status)
	}
}

func TestResearch_DiscoveryFailureAbortsRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	fake := &llmrouter.FakeClient{}
	o := New(testConfig("openai/gpt-4o-mini"), noopNames{}, fake)

	seed := model.SeedInput{Raw: srv.URL, Kind: model.SeedKindURL}
	_, err := o.Research(context.Background(), seed, Options{})

	var target *model.DiscoveryFailed
	assert.ErrorAs(t, err, &target)
}

func TestResearch_CancelledDuringExtractionReportsExtractionPhase(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		// Cancel the run's context mid-extraction, the way a caller
		// cancellation would land after at least one page request is
		// already underway.
		cancel()
		fmt.Fprint(w, `<html><body><article><p>`+repeatWords("Acme is a company that makes widgets for everyone.", 20)+`</p></article></body></html>`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/about">About</a></body></html>`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	fake := &llmrouter.FakeClient{Responses: []llmrouter.ChatResponse{
		{Content: `{"selected_paths": ["/about"], "path_explanations": {"/about": "company info"}}`},
	}}

	o := New(testConfig("openai/gpt-4o-mini"), noopNames{}, fake)

	seed := model.SeedInput{Raw: srv.URL, Kind: model.SeedKindURL}
	_, err := o.Research(ctx, seed, Options{})

	var cancelled *model.Cancelled
	require.ErrorAs(t, err, &cancelled)
	assert.Equal(t, model.PhaseExtraction, cancelled.ReachedPhase)
}

func repeatWords(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s + " "
	}
	return out
}
