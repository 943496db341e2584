package pathselect

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sells-group/theodore-core/internal/model"
)

// BuildPrompt renders the fixed C3 prompt: the host display name, the
// candidate path list as a JSON array, and the field schema the
// selector should keep in mind when judging which pages are worth
// crawling (spec.md §4.3).
func BuildPrompt(displayName string, paths []string) string {
	pathsJSON, _ := json.Marshal(paths)

	var schema strings.Builder
	for _, cat := range model.Categories() {
		fmt.Fprintf(&schema, "- %s:", cat)
		first := true
		for _, f := range model.Schema() {
			if f.Category != cat {
				continue
			}
			if !first {
				schema.WriteString(",")
			}
			fmt.Fprintf(&schema, " %s", f.Name)
			first = false
		}
		schema.WriteString("\n")
	}

	return fmt.Sprintf(`You are selecting which pages of a company's website are worth crawling to extract the following intelligence fields.

Company: %s

Field categories to eventually fill:
%s
Candidate paths (relative to the site root):
%s

Choose the subset of these paths most likely to contain information relevant to the fields above — think About, Pricing, Product, Team, Careers, Blog/News, and similar pages. Do not invent paths that are not in the candidate list.

Respond with ONLY valid JSON in this format:
{
  "selected_paths": ["/about", "/pricing"],
  "path_explanations": {
    "/about": "likely contains company identity and founding details",
    "/pricing": "likely contains business model and pricing signals"
  }
}`, displayName, schema.String(), string(pathsJSON))
}
