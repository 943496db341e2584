package model

// PathSource identifies which discovery sub-source first surfaced a path.
type PathSource string

const (
	PathSourceRobots     PathSource = "robots"
	PathSourceSitemap    PathSource = "sitemap"
	PathSourceNavigation PathSource = "navigation"
)

// PathSet is the output of the Path Discoverer (C2): a de-duplicated,
// order-preserving list of host-relative paths plus provenance.
type PathSet struct {
	Paths            []string              `json:"paths"`
	Sources          map[string]PathSource  `json:"sources"`
	DiscoverySeconds float64               `json:"discovery_seconds"`
	SourceTimings    map[string]float64     `json:"source_timings,omitempty"`
}

// RobotsDirectives preserves the parsed structure of robots.txt beyond
// the flat path list PathSet carries forward — allowed/disallowed path
// patterns per user agent, sitemaps, and any lines that failed to parse.
// The core never enforces these as policy (see spec.md §9); they are
// exposed for callers that want to layer ethical-crawling behavior on
// top without changing the discovery algorithm itself.
type RobotsDirectives struct {
	Found           bool                `json:"found"`
	Sitemaps        []string            `json:"sitemaps"`
	Allow           map[string][]string `json:"allow"`    // user-agent -> paths
	Disallow        map[string][]string `json:"disallow"` // user-agent -> paths
	CrawlDelay      map[string]float64  `json:"crawl_delay"`
	ParsingErrors   []string            `json:"parsing_errors,omitempty"`
}
