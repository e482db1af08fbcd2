package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Woo       WooConfig
	Cache     CacheConfig
	Recommend RecommendConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WooConfig holds WooCommerce API configuration
type WooConfig struct {
	URL            string `mapstructure:"url"`
	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`
	MaxProducts    int    `mapstructure:"max_products"`
}

// CacheConfig holds product cache configuration
type CacheConfig struct {
	TTL          time.Duration `mapstructure:"ttl"`
	SnapshotPath string        `mapstructure:"snapshot_path"`
}

// RecommendConfig holds recommendation engine configuration
type RecommendConfig struct {
	DefaultLimit       int  `mapstructure:"default_limit"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/medrec/")

	v.SetEnvPrefix("MEDREC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
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
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// WooCommerce defaults; an empty URL disables the external source and
	// the cache serves the on-disk snapshot only
	v.SetDefault("woo.url", "")
	v.SetDefault("woo.consumer_key", "")
	v.SetDefault("woo.consumer_secret", "")
	v.SetDefault("woo.max_products", 1000)

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.snapshot_path", "data/catalog.json")

	// Recommendation defaults
	v.SetDefault("recommend.default_limit", 10)
	v.SetDefault("recommend.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Woo.URL != "" {
		if config.Woo.ConsumerKey == "" || config.Woo.ConsumerSecret == "" {
			return fmt.Errorf("WooCommerce consumer key and secret are required when woo.url is set " +
				"(set MEDREC_WOO_CONSUMER_KEY and MEDREC_WOO_CONSUMER_SECRET)")
		}
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if config.Recommend.DefaultLimit < 1 || config.Recommend.DefaultLimit > 100 {
		return fmt.Errorf("recommend default limit must be between 1 and 100, got: %d",
			config.Recommend.DefaultLimit)
	}

	return nil
}
