package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sells-group/theodore-core/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longParagraph(word string, n int) string {
	return strings.Repeat(word+" ", n)
}

func TestExtract_OrderedAggregation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><article><h1>About</h1><p>` + longParagraph("About our company history and mission.", 20) + `</p></article></body></html>`))
	})
	mux.HandleFunc("/pricing", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><article><h1>Pricing</h1><p>` + longParagraph("Our pricing plans start at ten dollars.", 20) + `</p></article></body></html>`))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	e := New(Config{WorkerCount: 2, PerPageTimeout: 5 * time.Second})
	crawl, err := e.Extract(context.Background(), srv.URL, []string{"/about", "/pricing", "/missing"})
	require.NoError(t, err)

	require.Len(t, crawl.Pages, 3)
	assert.Equal(t, srv.URL+"/about", crawl.Pages[0].URL)
	assert.Equal(t, srv.URL+"/pricing", crawl.Pages[1].URL)
	assert.Equal(t, srv.URL+"/missing", crawl.Pages[2].URL)

	assert.True(t, crawl.Pages[0].OK)
	assert.True(t, crawl.Pages[1].OK)
	assert.False(t, crawl.Pages[2].OK)
	assert.Equal(t, model.ExtractorNone, crawl.Pages[2].Extractor)

	assert.Equal(t, 2, crawl.SuccessCount)
	assert.Equal(t, 1, crawl.FailureCount)

	aboutIdx := strings.Index(crawl.AggregatedText, "=== /about ===")
	pricingIdx := strings.Index(crawl.AggregatedText, "=== /pricing ===")
	require.GreaterOrEqual(t, aboutIdx, 0)
	require.GreaterOrEqual(t, pricingIdx, 0)
	assert.Less(t, aboutIdx, pricingIdx)
}

func TestExtract_StructuralFallbackWhenReadabilityThin(t *testing.T) {
	// A heavily scripted shell with little readable article content but
	// a body full of plain visible text outside <script>/<nav>.
	html := `<html><body>
<script>var x = 1;</script>
<nav>Home About Contact</nav>
<div>` + longParagraph("Plain visible content with no article structure at all here.", 30) + `</div>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)

	e := New(Config{WorkerCount: 1, FallbackThreshold: 100})
	crawl, err := e.Extract(context.Background(), srv.URL, []string{"/x"})
	require.NoError(t, err)
	require.Len(t, crawl.Pages, 1)

	page := crawl.Pages[0]
	assert.True(t, page.OK)
	assert.NotContains(t, page.Text, "var x = 1")
	assert.NotContains(t, page.Text, "Home About Contact")
}

func TestExtract_AllPagesFailReturnsExtractionFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	e := New(Config{WorkerCount: 2})
	_, err := e.Extract(context.Background(), srv.URL, []string{"/a", "/b"})

	var target *model.ExtractionFailed
	require.ErrorAs(t, err, &target)
	assert.Contains(t, err.Error(), "/a")
	assert.Contains(t, err.Error(), "/b")
}

func TestExtract_PerPageCharCapTruncates(t *testing.T) {
	bigText := longParagraph("word", 10000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><article><p>` + bigText + `</p></article></body></html>`))
	}))
	t.Cleanup(srv.Close)

	e := New(Config{WorkerCount: 1, PerPageCharCap: 500})
	crawl, err := e.Extract(context.Background(), srv.URL, []string{"/big"})
	require.NoError(t, err)
	require.Len(t, crawl.Pages, 1)
	assert.LessOrEqual(t, len(crawl.Pages[0].Text), 500)
}

func TestExtract_CancelledContextSurfacesInsteadOfExtractionFailed(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`<html><body><article><p>` + longParagraph("Plenty of readable content here for extraction.", 20) + `</p></article></body></html>`))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(Config{WorkerCount: 2})
	crawl, err := e.Extract(ctx, srv.URL, []string{"/about", "/pricing"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	// The context is cancelled before Extract starts, so every page
	// fails; the cancellation, not a zero-success ExtractionFailed, must
	// be what Extract reports.
	_ = crawl
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
