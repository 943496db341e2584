package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sells-group/theodore-core/internal/model"
)

func writeJSON(w io.Writer, intel model.CompanyIntelligence) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(intel)
}

func writeConsole(w io.Writer, intel model.CompanyIntelligence) error {
	fmt.Fprintf(w, "%s (%s)\n", intel.ResolvedSeed.DisplayName, intel.ResolvedSeed.BaseURL)
	fmt.Fprintf(w, "  paths discovered: %d, selected: %d, pages crawled: %d/%d ok\n",
		len(intel.PathSet.Paths), len(intel.Selection.Selected), intel.Crawl.SuccessCount, len(intel.Crawl.Pages))
	fmt.Fprintf(w, "  fields filled: %d, dropped: %d\n", intel.Distillation.FilledCount, len(intel.Distillation.DroppedKeys))
	fmt.Fprintf(w, "  total cost: $%.4f, total tokens: %d, total time: %.1fs\n",
		intel.Totals.CostUSD, intel.Totals.Tokens, intel.Totals.Seconds)

	fields := flatten(intel.Distillation.Fields)
	for _, name := range model.Categories() {
		fmt.Fprintf(w, "\n[%s]\n", name)
		for _, spec := range model.Schema() {
			if spec.Category != name {
				continue
			}
			if v, ok := fields[spec.Name]; ok {
				fmt.Fprintf(w, "  %s: %v\n", spec.Name, v)
			}
		}
	}
	return nil
}

// writeFields prints one "name: value" line per filled schema field,
// skipping anything the distiller left null.
func writeFields(w io.Writer, intel model.CompanyIntelligence) error {
	fields := flatten(intel.Distillation.Fields)
	for _, spec := range model.Schema() {
		if v, ok := fields[spec.Name]; ok {
			fmt.Fprintf(w, "%s: %v\n", spec.Name, v)
		}
	}
	return nil
}

// writeCSV emits a single data row with one column per schema field, in
// fixed schema order, preceded by a header row.
func writeCSV(w io.Writer, intel model.CompanyIntelligence) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	fields := flatten(intel.Distillation.Fields)
	schema := model.Schema()
	header := make([]string, len(schema))
	row := make([]string, len(schema))
	for i, spec := range schema {
		header[i] = spec.Name
		if v, ok := fields[spec.Name]; ok {
			row[i] = fmt.Sprintf("%v", v)
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	return cw.Write(row)
}

// flatten merges every category struct's json-tagged fields into one
// map keyed by wire name, reusing the same tags Schema() was built
// from rather than walking the struct by reflection.
func flatten(rec model.FieldRecord) map[string]any {
	out := map[string]any{}
	categories := []any{
		rec.Identity, rec.BusinessModel, rec.Products, rec.StageMetrics,
		rec.People, rec.Growth, rec.Technology, rec.Recognition, rec.OperationalMetadata,
	}
	for _, c := range categories {
		b, err := json.Marshal(c)
		if err != nil {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			continue
		}
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
