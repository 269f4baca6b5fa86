// Package config loads the pricing service configuration from file,
// .env, and environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/mamasphere/pricing-service/internal/pricing"
)

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Resolver  ResolverConfig  `mapstructure:"resolver"`
	Pricing   pricing.Config  `mapstructure:"pricing"`
	Quotes    QuotesConfig    `mapstructure:"quotes"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	APIKey       string        `mapstructure:"api_key"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// RateLimitConfig holds inbound rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// ResolverConfig holds location resolution configuration.
type ResolverConfig struct {
	// DeviceWait bounds how long the device geolocation step may take
	// before the resolver falls through to IP lookups.
	DeviceWait time.Duration `mapstructure:"device_wait"`

	ReverseGeocodeURL string `mapstructure:"reverse_geocode_url"`

	// IPLookupURL/IPLookupToken configure the credentialed IP lookup.
	// The strategy is skipped when the token is empty.
	IPLookupURL   string `mapstructure:"ip_lookup_url"`
	IPLookupToken string `mapstructure:"ip_lookup_token"`

	// FallbackIPLookupURL is the credential-free backup lookup.
	FallbackIPLookupURL string `mapstructure:"fallback_ip_lookup_url"`
}

// QuotesConfig holds the optional external quote source configuration.
// The source is enabled by the presence of an API key.
type QuotesConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// Enabled reports whether the external quote source should be wired in.
func (q QuotesConfig) Enabled() bool {
	return q.APIKey != "" && q.BaseURL != ""
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend       string `mapstructure:"backend"` // "memory" or "redis"
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

// TelemetryConfig holds OpenTelemetry export configuration.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// Load loads the configuration from file, .env, and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// .env is optional.
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("PRICING_SERVICE")
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file: defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Pricing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return nil, fmt.Errorf("invalid cache backend %q", cfg.Cache.Backend)
	}

	return &cfg, nil
}

// bindEnvVars binds flat environment variables to nested config keys.
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.api_key", "INTERNAL_API_KEY")
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("resolver.ip_lookup_token", "IP_LOOKUP_TOKEN")
	v.BindEnv("quotes.api_key", "QUOTE_SOURCE_API_KEY")
	v.BindEnv("quotes.base_url", "QUOTE_SOURCE_URL")
	v.BindEnv("cache.backend", "CACHE_BACKEND")
	v.BindEnv("cache.redis_addr", "REDIS_ADDR")
	v.BindEnv("cache.redis_password", "REDIS_PASSWORD")
	v.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// setDefaults seeds viper with defaults so partial config files merge
// over a complete configuration. Pricing tunables come from the pricing
// package's own defaults so the two never drift.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.no_color", false)

	v.SetDefault("rate_limit.requests_per_second", 50.0)
	v.SetDefault("rate_limit.burst", 100)

	v.SetDefault("resolver.device_wait", 8*time.Second)
	v.SetDefault("resolver.reverse_geocode_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("resolver.ip_lookup_url", "https://ipinfo.io")
	v.SetDefault("resolver.fallback_ip_lookup_url", "http://ip-api.com")

	def := pricing.Defaults()
	v.SetDefault("pricing.cache_ttl", def.CacheTTL)
	v.SetDefault("pricing.ratios.local_market", def.Ratios.LocalMarket)
	v.SetDefault("pricing.ratios.supermarket", def.Ratios.Supermarket)
	v.SetDefault("pricing.ratios.online_grocery", def.Ratios.OnlineGrocery)
	v.SetDefault("pricing.ratios.wholesale", def.Ratios.Wholesale)
	v.SetDefault("pricing.default_base_price", def.DefaultBasePrice)
	v.SetDefault("pricing.default_unit", def.DefaultUnit)
	v.SetDefault("pricing.staple_basket", def.StapleBasket)
	v.SetDefault("pricing.deal_ratio", def.DealRatio)
	v.SetDefault("pricing.high_price_threshold", def.HighPriceThreshold)
	v.SetDefault("pricing.low_price_threshold", def.LowPriceThreshold)
	v.SetDefault("pricing.max_external_quotes", def.MaxExternalQuotes)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_db", 0)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "opentelemetry-collector:4317")
}
