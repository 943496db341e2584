package model

// ExtractorKind identifies which extraction strategy produced a page's
// text, or that none did.
type ExtractorKind string

const (
	ExtractorTrafilatura     ExtractorKind = "trafilatura"
	ExtractorStructuralFallback ExtractorKind = "structural_fallback"
	ExtractorNone            ExtractorKind = "none"
)

// PageResult is the per-page outcome of the Parallel Extractor (C4).
type PageResult struct {
	URL          string        `json:"url"`
	OK           bool          `json:"ok"`
	Extractor    ExtractorKind `json:"extractor"`
	HTTPStatus   int           `json:"http_status"`
	Title        string        `json:"title,omitempty"`
	Text         string        `json:"text"`
	ByteCount    int           `json:"byte_count"`
	FetchSeconds float64       `json:"fetch_seconds"`
	Error        string        `json:"error,omitempty"`
}

// CrawlResult is the output of the Parallel Extractor (C4): the
// per-page results in selected-path order, plus the aggregated text
// built by concatenating successful pages with a delimiter.
type CrawlResult struct {
	Pages            []PageResult `json:"pages"`
	AggregatedText   string       `json:"aggregated_text"`
	TotalTextBytes   int          `json:"total_text_bytes"`
	ExtractionSeconds float64     `json:"extraction_seconds"`
	SuccessCount     int          `json:"success_count"`
	FallbackCount    int          `json:"fallback_count"`
	FailureCount     int          `json:"failure_count"`
}
