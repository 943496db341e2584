package discover

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sells-group/theodore-core/internal/model"
)

// fetchRobots fetches and parses /robots.txt. Line-oriented directives
// that fail to parse are recorded rather than aborting the parse,
// mirroring the original Python crawler's parsing-errors-tolerant
// behavior.
func fetchRobots(ctx context.Context, client *http.Client, baseURL string) (model.RobotsDirectives, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/robots.txt", nil)
	if err != nil {
		return model.RobotsDirectives{}, nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return model.RobotsDirectives{}, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.RobotsDirectives{Found: false}, nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.RobotsDirectives{}, nil, err
	}

	directives := parseRobots(string(body))
	return directives, directives.Sitemaps, nil
}

// parseRobots parses line-oriented robots.txt directives: User-agent,
// Allow, Disallow, Sitemap, Crawl-delay. Unrecognized or malformed
// lines are recorded in ParsingErrors and otherwise ignored.
func parseRobots(content string) model.RobotsDirectives {
	d := model.RobotsDirectives{
		Found:      true,
		Allow:      make(map[string][]string),
		Disallow:   make(map[string][]string),
		CrawlDelay: make(map[string]float64),
	}

	var currentAgent string
	haveAgent := false

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, ":")
		if idx < 0 {
			d.ParsingErrors = append(d.ParsingErrors, formatLineError(i+1, line))
			continue
		}

		directive := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])

		switch directive {
		case "user-agent":
			currentAgent = value
			haveAgent = true
			if _, ok := d.Allow[currentAgent]; !ok {
				d.Allow[currentAgent] = nil
				d.Disallow[currentAgent] = nil
			}
		case "sitemap":
			d.Sitemaps = append(d.Sitemaps, value)
		case "allow":
			if !haveAgent {
				d.ParsingErrors = append(d.ParsingErrors, formatLineError(i+1, line))
				continue
			}
			d.Allow[currentAgent] = append(d.Allow[currentAgent], value)
		case "disallow":
			if !haveAgent {
				d.ParsingErrors = append(d.ParsingErrors, formatLineError(i+1, line))
				continue
			}
			d.Disallow[currentAgent] = append(d.Disallow[currentAgent], value)
		case "crawl-delay":
			if !haveAgent {
				d.ParsingErrors = append(d.ParsingErrors, formatLineError(i+1, line))
				continue
			}
			secs, err := strconv.ParseFloat(value, 64)
			if err != nil {
				d.ParsingErrors = append(d.ParsingErrors, formatLineError(i+1, line))
				continue
			}
			d.CrawlDelay[currentAgent] = secs
		default:
			// Unknown directives are tolerated silently; they are not
			// errors, just not modeled.
		}
	}

	return d
}

func formatLineError(lineNum int, line string) string {
	return "line " + strconv.Itoa(lineNum) + ": " + line
}

// robotsCandidatePaths returns the Allow/Disallow entries for the
// wildcard user agent as candidate paths — not as policy to honor (see
// spec.md §7, §9: the core never enforces robots directives).
func robotsCandidatePaths(d model.RobotsDirectives) []string {
	var out []string
	out = append(out, d.Allow["*"]...)
	out = append(out, d.Disallow["*"]...)
	return out
}
