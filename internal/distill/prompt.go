package distill

import (
	"fmt"
	"strings"

	"github.com/sells-group/theodore-core/internal/model"
)

// BuildPrompt renders the fixed C5 prompt: the field schema grouped by
// category with types and enumerations, the company name, and the
// aggregated crawl text (already truncated by the caller).
func BuildPrompt(companyName, aggregatedText string) string {
	var schema strings.Builder
	for _, cat := range model.Categories() {
		fmt.Fprintf(&schema, "\n%s:\n", cat)
		for _, f := range model.Schema() {
			if f.Category != cat {
				continue
			}
			fmt.Fprintf(&schema, "  - %s (%s)", f.Name, f.Type)
			if len(f.Enum) > 0 {
				fmt.Fprintf(&schema, " one of: %s", strings.Join(f.Enum, ", "))
			}
			schema.WriteString("\n")
		}
	}

	return fmt.Sprintf(`You are extracting structured company intelligence from crawled website text.

Company: %s

Fixed field schema (emit exactly these keys, nothing else):
%s
Rules:
- Return a single JSON object whose keys are exactly the field names above.
- Use null for any field not supported by the text below — never guess.
- string_list fields must be JSON arrays of strings.
- bool fields must be true or false, never strings.
- Do not include any prose outside the JSON object.

Website text:
%s

Respond with ONLY the JSON object.`, companyName, schema.String(), aggregatedText)
}
