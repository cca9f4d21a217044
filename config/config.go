package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/relatedbrands/generator/internal/domain"
	"github.com/relatedbrands/generator/internal/usecase/ranking"
	"github.com/spf13/viper"
)

// Config holds all configuration for the generator
type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	Output    OutputConfig    `mapstructure:"output"`
	Ranking   RankingConfig   `mapstructure:"ranking"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Widget    WidgetConfig    `mapstructure:"widget"`
}

// StoreConfig holds catalog API configuration
type StoreConfig struct {
	Hash        string        `mapstructure:"hash"`
	AccessToken string        `mapstructure:"access_token"`
	APIBaseURL  string        `mapstructure:"api_base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	PageLimit   int           `mapstructure:"page_limit"`
}

// OutputConfig holds artifact output configuration
type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	FileName string `mapstructure:"file_name"`
}

// RankingConfig holds related-brand ranking configuration
type RankingConfig struct {
	TopCategoryCount   int    `mapstructure:"top_category_count"`
	MaxBrands          int    `mapstructure:"max_brands"`
	Mode               string `mapstructure:"mode"` // RAW, WEIGHTED or KOFN
	MinCategoryMatches int    `mapstructure:"min_category_matches"`
	ExcludeCategoryIDs string `mapstructure:"exclude_category_ids"`
}

// RateLimitConfig holds pacing configuration
type RateLimitConfig struct {
	BrandInterval     time.Duration `mapstructure:"brand_interval"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0 disables per-request limiting
	Burst             int           `mapstructure:"burst"`
}

// CacheConfig holds brand lookup cache configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory", "redis" or "none"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds preview server configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig holds metrics export configuration
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// WidgetConfig holds storefront widget registration configuration
type WidgetConfig struct {
	TemplateName string `mapstructure:"template_name"`
	InstanceName string `mapstructure:"instance_name"`
	Heading      string `mapstructure:"heading"`
	MaxBrands    int    `mapstructure:"max_brands"`
	DataURL      string `mapstructure:"data_url"`
	TemplateFile string `mapstructure:"template_file"`
	Region       string `mapstructure:"region"`
	TemplatePath string `mapstructure:"template_path"`
	SchemaPath   string `mapstructure:"schema_path"`
}

// legacyEnv maps config keys onto the environment names the storefront
// tooling has always used
var legacyEnv = map[string]string{
	"store.hash":                   "STORE_HASH",
	"store.access_token":           "ACCESS_TOKEN",
	"output.dir":                   "OUTPUT_DIR",
	"ranking.top_category_count":   "TOP_CATEGORY_COUNT",
	"ranking.max_brands":           "MAX_BRANDS",
	"ranking.mode":                 "RANKING_MODE",
	"ranking.min_category_matches": "MIN_CATEGORY_MATCHES",
	"ranking.exclude_category_ids": "EXCLUDE_CATEGORY_IDS",
}

// Load loads configuration from .env, an optional config file and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("store.api_base_url", "https://api.bigcommerce.com")
	v.SetDefault("store.timeout", "30s")
	v.SetDefault("store.page_limit", 250)

	v.SetDefault("output.dir", "public/content")
	v.SetDefault("output.file_name", "related-brands.json")

	v.SetDefault("ranking.top_category_count", 5)
	v.SetDefault("ranking.max_brands", 12)
	v.SetDefault("ranking.mode", "KOFN")
	v.SetDefault("ranking.min_category_matches", 2)
	v.SetDefault("ranking.exclude_category_ids", "")

	v.SetDefault("ratelimit.brand_interval", "450ms")
	v.SetDefault("ratelimit.requests_per_second", 0)
	v.SetDefault("ratelimit.burst", 1)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("metrics.textfile", "")

	v.SetDefault("widget.template_name", "Related Brands (Auto)")
	v.SetDefault("widget.instance_name", "Related Brands – Default")
	v.SetDefault("widget.heading", "Related brands")
	v.SetDefault("widget.max_brands", 12)
	v.SetDefault("widget.data_url", "/content/related-brands.json")
	v.SetDefault("widget.template_file", "pages/brand")
	v.SetDefault("widget.region", "brand_below_header")
	v.SetDefault("widget.template_path", "")
	v.SetDefault("widget.schema_path", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Ranking.TopCategoryCount < 0 {
		return fmt.Errorf("top category count must not be negative, got: %d", config.Ranking.TopCategoryCount)
	}

	if config.Ranking.MaxBrands < 0 {
		return fmt.Errorf("max brands must not be negative, got: %d", config.Ranking.MaxBrands)
	}

	if _, err := ranking.ParseMode(config.Ranking.Mode); err != nil {
		return fmt.Errorf("ranking mode must be RAW, WEIGHTED or KOFN, got: %s", config.Ranking.Mode)
	}

	if _, err := config.Ranking.ExcludedCategories(); err != nil {
		return err
	}

	if config.Store.PageLimit <= 0 {
		return fmt.Errorf("page limit must be positive, got: %d", config.Store.PageLimit)
	}

	if config.RateLimit.BrandInterval < 0 {
		return fmt.Errorf("brand interval must not be negative, got: %s", config.RateLimit.BrandInterval)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" && config.Cache.Type != "none" {
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'none', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	return nil
}

// RequireStore checks the credentials every catalog-facing command needs
func (c *Config) RequireStore() error {
	if c.Store.Hash == "" || c.Store.AccessToken == "" {
		return domain.ErrMissingCredentials
	}
	return nil
}

// StoreURL returns the v3 API root of the configured store
func (s StoreConfig) StoreURL() string {
	return fmt.Sprintf("%s/stores/%s/v3", strings.TrimSuffix(s.APIBaseURL, "/"), s.Hash)
}

// OutputPath returns the artifact path inside the output directory
func (o OutputConfig) OutputPath() string {
	return strings.TrimSuffix(o.Dir, "/") + "/" + o.FileName
}

// ExcludedCategories parses the comma-separated exclusion list, ignoring blanks
func (r RankingConfig) ExcludedCategories() ([]int, error) {
	var ids []int
	for _, part := range strings.Split(r.ExcludeCategoryIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("excluded category id %q is not an integer", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Strategy returns the configured ranking strategy
func (r RankingConfig) Strategy() (ranking.Strategy, error) {
	mode, err := ranking.ParseMode(r.Mode)
	if err != nil {
		return ranking.Strategy{}, err
	}
	return ranking.Strategy{Mode: mode, MinCategoryMatches: r.MinCategoryMatches}, nil
}
