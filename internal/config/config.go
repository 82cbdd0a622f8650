package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Corpus  CorpusConfig  `mapstructure:"corpus" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Quiz    QuizConfig    `mapstructure:"quiz" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// CorpusConfig points at the vocabulary data files.
// SynonymsDir holds one <letter>.json shard per initial letter.
type CorpusConfig struct {
	WordsPath   string `mapstructure:"words_path" validate:"required"`
	SynonymsDir string `mapstructure:"synonyms_dir" validate:"required"`
}

// Storage backends understood by StorageConfig.Backend.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// StorageConfig selects and configures the key-value backend that persists
// per-mode progress.
type StorageConfig struct {
	Backend     string `mapstructure:"backend" validate:"required,oneof=memory sqlite postgres redis"`
	KeyPrefix   string `mapstructure:"key_prefix" validate:"required"`
	SQLitePath  string `mapstructure:"sqlite_path" validate:"required_if=Backend sqlite"`
	PostgresURL string `mapstructure:"postgres_url" validate:"required_if=Backend postgres,omitempty,url"`
	RedisAddr   string `mapstructure:"redis_addr" validate:"required_if=Backend redis,omitempty,hostname_port"`
	RedisDB     int    `mapstructure:"redis_db" validate:"gte=0"`
}

// QuizConfig tunes word selection and question assembly.
type QuizConfig struct {
	// ActiveCap is the maximum number of encountered, non-mastered words per mode.
	ActiveCap int `mapstructure:"active_cap" validate:"gt=0"`
	// ReviewMinimum is the number of mastered words required before review
	// mode serves questions. Zero disables the gate.
	ReviewMinimum int `mapstructure:"review_minimum" validate:"gte=0"`
	OptionCount   int `mapstructure:"option_count" validate:"gte=2"`
	DetailLimit   int `mapstructure:"detail_limit" validate:"gt=0"`
}
