package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var strippedTags = []string{"script", "style", "nav", "header", "footer", "aside"}

// extractStructural is the structural fallback extractor: it removes
// chrome-like elements and collects visible text from the remaining
// body, collapsing whitespace, per spec.md §4.4 step 5.
func extractStructural(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	for _, tag := range strippedTags {
		doc.Find(tag).Remove()
	}

	text := doc.Find("body").Text()
	return collapseWhitespace(text), true
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
