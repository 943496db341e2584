package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/theodore-core/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "theodore",
	Short: "Company intelligence extraction pipeline",
	Long:  "Resolves a seed (URL or company name), discovers and selects the website's most informative pages, crawls them, and distills a structured company intelligence record.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if v, _ := cmd.Flags().GetString("model"); v != "" {
			cfg.Provider.ModelID = v
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("model", "", "override the configured model id (e.g. openai/gpt-4o-mini)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
