package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. BIBLIO_SERVER_PORT or BIBLIO_STORAGE_BACKEND.
const EnvPrefix = "BIBLIO"

// defaults are registered with viper before reading. Registering every key
// also lets AutomaticEnv resolve it during Unmarshal.
var defaults = map[string]any{
	"server.port":          8080,
	"server.log_level":     "info",
	"corpus.words_path":    "data/freevocabulary_words.json",
	"corpus.synonyms_dir":  "data/synonyms",
	"storage.backend":      BackendSQLite,
	"storage.key_prefix":   "biblioBuddy.v1",
	"storage.sqlite_path":  "bibliobuddy.db",
	"storage.postgres_url": "",
	"storage.redis_addr":   "",
	"storage.redis_db":     0,
	"quiz.active_cap":      50,
	"quiz.review_minimum":  10,
	"quiz.option_count":    5,
	"quiz.detail_limit":    10,
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
