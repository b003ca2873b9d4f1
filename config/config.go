package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/winematch/backend/internal/domain"
	"github.com/winematch/backend/internal/usecase"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Judge    JudgeConfig    `mapstructure:"judge"`
	Matching MatchingConfig `mapstructure:"matching"`
	Decision DecisionConfig `mapstructure:"decision"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds the retail catalog search API configuration
type CatalogConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	PageSize          int           `mapstructure:"page_size"`
	VolumeMin         float64       `mapstructure:"volume_min"`
	VolumeMax         float64       `mapstructure:"volume_max"`
	Category          string        `mapstructure:"category"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxAttempts       int           `mapstructure:"max_attempts"`
}

// JudgeConfig selects and configures the semantic judge
type JudgeConfig struct {
	Provider   string        `mapstructure:"provider"` // "none" or "anthropic"
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Model      string        `mapstructure:"model"`
	MaxTokens  int64         `mapstructure:"max_tokens"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// MatchingConfig holds candidate selection tuning
type MatchingConfig struct {
	MinRawScore    float64         `mapstructure:"min_raw_score"`
	EarlyExitScore float64         `mapstructure:"early_exit_score"`
	MinVolume      float64         `mapstructure:"min_volume"`
	GlassBonus     float64         `mapstructure:"glass_bonus"`
	PaperPenalty   float64         `mapstructure:"paper_penalty"`
	VerifiedFile   string          `mapstructure:"verified_file"`
	Weights        usecase.Weights `mapstructure:"weights"`
}

// DecisionConfig holds the accept thresholds
type DecisionConfig struct {
	ResolveThreshold float64 `mapstructure:"resolve_threshold"`
	CompareThreshold float64 `mapstructure:"compare_threshold"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" or "none"
	TTL  time.Duration `mapstructure:"ttl"`
}

// BatchConfig bounds batch resolution
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load loads configuration from the default config file locations and the environment
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from path when set, otherwise from the default locations.
// Environment variables prefixed WINEMATCH_ override file values.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/winematch/")
	}

	v.SetEnvPrefix("WINEMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional unless an explicit path was given
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := validate(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: invalid")
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.base_url", "https://api-extern.systembolaget.se/sb-api-ecommerce/v1")
	v.SetDefault("catalog.page_size", 10)
	v.SetDefault("catalog.volume_min", 700)
	v.SetDefault("catalog.volume_max", 800)
	v.SetDefault("catalog.category", "Vin")
	v.SetDefault("catalog.timeout", "30s")
	v.SetDefault("catalog.requests_per_second", 5)
	v.SetDefault("catalog.burst", 10)
	v.SetDefault("catalog.max_attempts", 3)

	v.SetDefault("judge.provider", "none")
	v.SetDefault("judge.api_key", "")
	v.SetDefault("judge.base_url", "")
	v.SetDefault("judge.model", "claude-haiku-4-5-20251001")
	v.SetDefault("judge.max_tokens", 1000)
	v.SetDefault("judge.timeout", "15s")
	v.SetDefault("judge.max_retries", 2)

	defaults := usecase.DefaultMatchConfig()
	v.SetDefault("matching.min_raw_score", defaults.MinRawScore)
	v.SetDefault("matching.early_exit_score", defaults.EarlyExitScore)
	v.SetDefault("matching.min_volume", defaults.MinVolume)
	v.SetDefault("matching.glass_bonus", defaults.GlassBonus)
	v.SetDefault("matching.paper_penalty", defaults.PaperPenalty)
	v.SetDefault("matching.verified_file", "")
	v.SetDefault("matching.weights.producer_match", defaults.Weights.ProducerMatch)
	v.SetDefault("matching.weights.winery_in_name", defaults.Weights.WineryInName)
	v.SetDefault("matching.weights.coverage", defaults.Weights.Coverage)
	v.SetDefault("matching.weights.extra_token_penalty", defaults.Weights.ExtraTokenPenalty)
	v.SetDefault("matching.weights.extra_token_cap", defaults.Weights.ExtraTokenCap)
	v.SetDefault("matching.weights.added_grape_penalty", defaults.Weights.AddedGrapePenalty)
	v.SetDefault("matching.weights.min_distinctive_rate", defaults.Weights.MinDistinctiveRate)

	v.SetDefault("decision.resolve_threshold", 40)
	v.SetDefault("decision.compare_threshold", 70)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("batch.concurrency", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.Catalog.BaseURL == "" {
		return eris.New("catalog base URL is required (set WINEMATCH_CATALOG_BASE_URL)")
	}
	if cfg.Catalog.PageSize <= 0 {
		return eris.Errorf("catalog page size must be positive, got: %d", cfg.Catalog.PageSize)
	}

	switch cfg.Judge.Provider {
	case "none":
	case "anthropic":
		if cfg.Judge.APIKey == "" {
			return eris.New("judge API key is required for provider 'anthropic' (set WINEMATCH_JUDGE_API_KEY)")
		}
	default:
		return eris.Errorf("judge provider must be 'none' or 'anthropic', got: %s", cfg.Judge.Provider)
	}

	for name, threshold := range map[string]float64{
		"decision.resolve_threshold": cfg.Decision.ResolveThreshold,
		"decision.compare_threshold": cfg.Decision.CompareThreshold,
		"matching.min_raw_score":     cfg.Matching.MinRawScore,
		"matching.early_exit_score":  cfg.Matching.EarlyExitScore,
	} {
		if threshold < 0 || threshold > 100 {
			return eris.Errorf("%s must be within 0..100, got: %v", name, threshold)
		}
	}
	if cfg.Matching.MinRawScore == 0 {
		return eris.New("matching.min_raw_score must be above 0")
	}
	if cfg.Matching.EarlyExitScore == 0 {
		return eris.New("matching.early_exit_score must be above 0")
	}

	if cfg.Cache.Type != "memory" && cfg.Cache.Type != "none" {
		return eris.Errorf("cache type must be 'memory' or 'none', got: %s", cfg.Cache.Type)
	}

	if cfg.Batch.Concurrency < 1 {
		return eris.Errorf("batch concurrency must be at least 1, got: %d", cfg.Batch.Concurrency)
	}

	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return eris.Errorf("log format must be 'json' or 'console', got: %s", cfg.Log.Format)
	}

	return nil
}

// MatchConfig converts the catalog and matching sections into matcher settings
func (c *Config) MatchConfig() usecase.MatchConfig {
	filters := domain.SearchFilters{
		VolumeMin: c.Catalog.VolumeMin,
		VolumeMax: c.Catalog.VolumeMax,
		Category:  c.Catalog.Category,
		PageSize:  c.Catalog.PageSize,
	}

	return usecase.MatchConfig{
		Filters:        filters,
		MinVolume:      c.Matching.MinVolume,
		MinRawScore:    c.Matching.MinRawScore,
		EarlyExitScore: c.Matching.EarlyExitScore,
		GlassBonus:     c.Matching.GlassBonus,
		PaperPenalty:   c.Matching.PaperPenalty,
		Weights:        c.Matching.Weights,
	}
}

// InitLogger initializes the global zap logger
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
