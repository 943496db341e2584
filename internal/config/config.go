// Package config loads antoine's runtime configuration from an optional
// YAML file layered under environment variables, following the
// teacher's viper-based struct-of-structs pattern.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Provider  ProviderConfig  `yaml:"provider" mapstructure:"provider"`
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	Selection SelectionConfig `yaml:"selection" mapstructure:"selection"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Distill   DistillConfig   `yaml:"distill" mapstructure:"distill"`
	Pricing   PricingConfig   `yaml:"pricing" mapstructure:"pricing"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ProviderConfig configures the OpenAI-compatible chat-completions
// gateway shared by the Path Selector (C3) and Field Distiller (C5).
type ProviderConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	ModelID string `yaml:"model_id" mapstructure:"model_id"`
	Referer string `yaml:"referer" mapstructure:"referer"`
	Title   string `yaml:"title" mapstructure:"title"`
}

// DiscoveryConfig configures the Path Discoverer (C2).
type DiscoveryConfig struct {
	TimeoutSecs    int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	SubTimeoutSecs int `yaml:"sub_timeout_secs" mapstructure:"sub_timeout_secs"`
	MaxPaths       int `yaml:"max_paths" mapstructure:"max_paths"`
}

// SelectionConfig configures the Path Selector (C3).
type SelectionConfig struct {
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxTokens      int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature    float64 `yaml:"temperature" mapstructure:"temperature"`
	MinConfidence  float64 `yaml:"min_confidence" mapstructure:"min_confidence"`
	MaxSelected    int     `yaml:"max_selected" mapstructure:"max_selected"`
}

// ExtractConfig configures the Parallel Extractor (C4).
type ExtractConfig struct {
	WorkerCount       int `yaml:"worker_count" mapstructure:"worker_count"`
	PerPageTimeoutSecs int `yaml:"per_page_timeout_secs" mapstructure:"per_page_timeout_secs"`
	MaxRedirects      int `yaml:"max_redirects" mapstructure:"max_redirects"`
	MaxBodyBytes      int `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	PerPageCharCap    int `yaml:"per_page_char_cap" mapstructure:"per_page_char_cap"`
	FallbackThreshold int `yaml:"fallback_threshold" mapstructure:"fallback_threshold"`
}

// DistillConfig configures the Field Distiller (C5).
type DistillConfig struct {
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxTokens      int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature    float64 `yaml:"temperature" mapstructure:"temperature"`
	MinFieldsFilled int    `yaml:"min_fields_filled" mapstructure:"min_fields_filled"`
	AggregatedTextCharCap int `yaml:"aggregated_text_char_cap" mapstructure:"aggregated_text_char_cap"`
}

// PricingConfig holds per-model token pricing (USD per million tokens)
// for the chat-completions provider.
type PricingConfig struct {
	Models map[string]ModelPricing `yaml:"models" mapstructure:"models"`
}

// ModelPricing holds per-model token pricing.
type ModelPricing struct {
	InputPerMTok  float64 `yaml:"input_per_mtok" mapstructure:"input_per_mtok"`
	OutputPerMTok float64 `yaml:"output_per_mtok" mapstructure:"output_per_mtok"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks required configuration fields.
func (c *Config) Validate() error {
	var errs []string

	if c.Provider.APIKey == "" {
		errs = append(errs, "provider.api_key is required")
	}
	if c.Provider.ModelID == "" {
		errs = append(errs, "provider.model_id is required")
	}
	if c.Extract.WorkerCount < 1 || c.Extract.WorkerCount > 32 {
		errs = append(errs, "extract.worker_count must be between 1 and 32")
	}
	if c.Selection.MinConfidence < 0 || c.Selection.MinConfidence > 1 {
		errs = append(errs, "selection.min_confidence must be between 0.0 and 1.0")
	}
	if c.Distill.MinFieldsFilled < 0 {
		errs = append(errs, "distill.min_fields_filled must be >= 0")
	}

	if len(errs) > 0 {
		return eris.New(fmt.Sprintf("config: validation failed: %s", strings.Join(errs, "; ")))
	}
	return nil
}

// Load reads configuration from an optional config.yaml and environment
// variables. THEODORE_MODEL_ID and OPEN_ROUTER_API_KEY are read by name
// per spec.md §6; all other keys use the THEODORE_ prefix.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("THEODORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("provider.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("provider.referer", "https://theodore-ai.com")
	v.SetDefault("provider.title", "Theodore AI Company Intelligence")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("discovery.timeout_secs", 20)
	v.SetDefault("discovery.sub_timeout_secs", 10)
	v.SetDefault("discovery.max_paths", 200)

	v.SetDefault("selection.timeout_secs", 120)
	v.SetDefault("selection.max_tokens", 4000)
	v.SetDefault("selection.temperature", 0.1)
	v.SetDefault("selection.min_confidence", 0.6)
	v.SetDefault("selection.max_selected", 15)

	v.SetDefault("extract.worker_count", 10)
	v.SetDefault("extract.per_page_timeout_secs", 30)
	v.SetDefault("extract.max_redirects", 5)
	v.SetDefault("extract.max_body_bytes", 1048576)
	v.SetDefault("extract.per_page_char_cap", 15000)
	v.SetDefault("extract.fallback_threshold", 100)

	v.SetDefault("distill.timeout_secs", 120)
	v.SetDefault("distill.max_tokens", 8000)
	v.SetDefault("distill.temperature", 0.1)
	v.SetDefault("distill.min_fields_filled", 5)
	v.SetDefault("distill.aggregated_text_char_cap", 100000)

	// spec.md §6 names these two env vars without the THEODORE_ prefix.
	_ = v.BindEnv("provider.api_key", "OPEN_ROUTER_API_KEY")
	_ = v.BindEnv("provider.model_id", "THEODORE_MODEL_ID")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
