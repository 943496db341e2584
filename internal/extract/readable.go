package extract

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// extractReadable runs the primary readable-content extractor: it
// strips navigation/chrome/footer and returns the main body text of an
// HTML page, per spec.md §4.4 step 4.
func extractReadable(pageURL, html string) (title, text string, ok bool) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", "", false
	}

	article, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		return "", "", false
	}

	return article.Title, strings.TrimSpace(article.TextContent), true
}
