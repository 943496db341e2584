package discover

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// sitemapIndex and urlSet model the two XML shapes a sitemap URL may
// return. No third-party sitemap-object library appears anywhere in
// the example corpus, so these stay plain structs decoded by stdlib
// encoding/xml — but charset handling follows the teacher's own
// internal/fetcher/xml.go, which feeds encoding/xml a CharsetReader
// backed by golang.org/x/text/encoding/htmlindex rather than assuming
// UTF-8, since a sitemap's XML prolog can declare any charset.
type sitemapIndex struct {
	XMLName xml.Name      `xml:"sitemapindex"`
	Entries []sitemapEntry `xml:"sitemap"`
}

type sitemapEntry struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc string `xml:"loc"`
}

// expandSitemaps fetches each sitemap URL, follows one level of
// <sitemapindex> nesting, and returns host-relative paths extracted
// from every <loc> that matches baseHost. Locs pointing at a different
// host are dropped (spec.md §4.2).
func expandSitemaps(ctx context.Context, client *http.Client, baseHost string, sitemapURLs []string) []string {
	var paths []string
	for _, su := range sitemapURLs {
		paths = append(paths, fetchSitemap(ctx, client, baseHost, su, true)...)
	}
	return dedupe(paths)
}

func fetchSitemap(ctx context.Context, client *http.Client, baseHost, sitemapURL string, followIndex bool) []string {
	body, err := fetchBody(ctx, client, sitemapURL)
	if err != nil {
		return nil
	}

	var index sitemapIndex
	if decodeXML(body, &index) == nil && len(index.Entries) > 0 {
		if !followIndex {
			return nil
		}
		var paths []string
		for _, e := range index.Entries {
			paths = append(paths, fetchSitemap(ctx, client, baseHost, e.Loc, false)...)
		}
		return paths
	}

	var set urlSet
	if decodeXML(body, &set) != nil {
		return nil
	}

	var paths []string
	for _, e := range set.URLs {
		if p, ok := pathForHost(baseHost, e.Loc); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

func fetchBody(ctx context.Context, client *http.Client, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errNonSuccessStatus
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// decodeXML decodes body into v, resolving any non-UTF-8 charset named
// in the XML prolog via golang.org/x/text/encoding/htmlindex — the
// same CharsetReader wiring as the teacher's internal/fetcher.StreamXML.
func decodeXML(body []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "sitemap: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}
	return dec.Decode(v)
}

// pathForHost resolves loc (absolute or relative) against baseHost and
// returns its normalized path if loc's host matches baseHost.
func pathForHost(baseHost, loc string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(loc))
	if err != nil {
		return "", false
	}
	if u.Host != "" && !strings.EqualFold(u.Host, baseHost) {
		return "", false
	}
	return normalizePath(u.Path), true
}
