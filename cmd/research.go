package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/theodore-core/internal/model"
	"github.com/sells-group/theodore-core/internal/orchestrator"
	"github.com/sells-group/theodore-core/pkg/llmrouter"
)

var (
	researchSeed   string
	researchFormat string
	researchOutput string
)

// noOpNameResolver never resolves a bare company name. spec.md §6 names
// the name→URL lookup as an external collaborator the core merely
// consumes; the CLI ships without one and expects URL seeds.
type noOpNameResolver struct{}

func (noOpNameResolver) Lookup(context.Context, string) (string, bool, error) {
	return "", false, nil
}

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research a single company by seed URL or name",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if researchSeed == "" {
			return fmt.Errorf("--seed (or --url) is required")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		llm := llmrouter.New(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Referer, cfg.Provider.Title)
		orch := orchestrator.New(cfg, noOpNameResolver{}, llm)

		seed := model.SeedInput{Raw: researchSeed}

		intel, err := orch.Research(ctx, seed, orchestrator.Options{
			ProgressObserver: func(e model.PhaseEvent) {
				if e.Status == model.PhaseStatusFailed {
					zap.L().Warn("theodore: phase failed", zap.String("phase", string(e.Phase)), zap.Duration("duration", e.Duration), zap.String("detail", e.Detail))
					return
				}
				zap.L().Info("theodore: phase complete", zap.String("phase", string(e.Phase)), zap.Duration("duration", e.Duration))
			},
		})
		if err != nil {
			return eris.Wrap(err, "research")
		}

		out := os.Stdout
		var w io.Writer = out
		if researchOutput != "" {
			f, createErr := os.Create(researchOutput)
			if createErr != nil {
				return eris.Wrap(createErr, "open output file")
			}
			defer f.Close()
			w = f
		}

		return writeIntelligence(w, intel, researchFormat)
	},
}

func init() {
	researchCmd.Flags().StringVar(&researchSeed, "seed", "", "company URL or name (required)")
	researchCmd.Flags().StringVar(&researchSeed, "url", "", "alias for --seed")
	researchCmd.Flags().StringVar(&researchFormat, "format", "console", "output format: console|json|csv|fields")
	researchCmd.Flags().StringVar(&researchOutput, "output", "", "write output to this path instead of stdout")
	rootCmd.AddCommand(researchCmd)
}

func writeIntelligence(w io.Writer, intel model.CompanyIntelligence, format string) error {
	switch format {
	case "json":
		return writeJSON(w, intel)
	case "csv":
		return writeCSV(w, intel)
	case "fields":
		return writeFields(w, intel)
	case "console", "":
		return writeConsole(w, intel)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
