package discover

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// scanNavigation fetches baseURL, parses it as HTML, and returns
// host-relative paths for every <a href> that resolves to baseHost
// after normalization (spec.md §4.2).
func scanNavigation(ctx context.Context, client *http.Client, baseURL, baseHost string) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var paths []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if p, ok := resolveNavHref(base, baseHost, attr.Val); ok {
					paths = append(paths, p)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return dedupe(paths)
}

func resolveNavHref(base *url.URL, baseHost, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return "", false
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(u)
	if !strings.EqualFold(resolved.Host, baseHost) {
		return "", false
	}

	resolved.Fragment = ""
	resolved.RawQuery = ""
	return normalizePath(resolved.Path), true
}
