package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string     `mapstructure:"env"`        // current application environment (local, dev, production etc)
	TelegramAPIToken string     `mapstructure:"-"`          // Telegram API token loaded from environment
	DB               DB         `mapstructure:"database"`   // database configuration section
	Generation       Generation `mapstructure:"generation"` // question provider configuration section
	Sessions         Sessions   `mapstructure:"sessions"`   // in-memory session housekeeping
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether round history should be stored in PostgreSQL.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// Generation configures the text-generation provider.
type Generation struct {
	APIKey     string        `mapstructure:"-"`               // provider credential loaded from environment
	Model      string        `mapstructure:"model"`           // provider model name
	Language   string        `mapstructure:"language"`        // BCP 47 tag of the question language
	BatchSize  int           `mapstructure:"batch_size"`      // questions per round
	MaxOptions int           `mapstructure:"max_options"`     // upper bound of answer choices per question
	Timeout    time.Duration `mapstructure:"timeout"`         // upper bound of a single provider call
	Shuffle    bool          `mapstructure:"shuffle_options"` // reorder answer choices after validation
}

// LanguageTag returns the parsed question language.
func (g Generation) LanguageTag() language.Tag {
	tag, err := language.Parse(g.Language)
	if err != nil {
		return language.Hebrew
	}
	return tag
}

// Sessions configures release of rounds abandoned by idle players.
type Sessions struct {
	IdleTTL   time.Duration `mapstructure:"idle_ttl"`   // rounds untouched for longer are abandoned
	SweepSpec string        `mapstructure:"sweep_spec"` // cron spec of the sweep job
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A local .env file is optional.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("generation.model", "gemini-3-flash-preview")
	v.SetDefault("generation.language", "he")
	v.SetDefault("generation.batch_size", 5)
	v.SetDefault("generation.max_options", 6)
	v.SetDefault("generation.timeout", "30s")
	v.SetDefault("generation.shuffle_options", false)
	v.SetDefault("sessions.idle_ttl", "2h")
	v.SetDefault("sessions.sweep_spec", "@every 10m")
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Sensitive values only come from the environment.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.Generation.APIKey = v.GetString("gemini_api_key")
	if cfg.Generation.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingEnvironmentVariables)
	}

	// Without a database URL rounds are kept in memory.
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := language.Parse(c.Generation.Language); err != nil {
		return fmt.Errorf("%w: generation.language %q: %v", ErrInvalidConfig, c.Generation.Language, err)
	}
	if c.Generation.BatchSize <= 0 {
		return fmt.Errorf("%w: generation.batch_size must be positive", ErrInvalidConfig)
	}
	if c.Generation.MaxOptions < 2 {
		return fmt.Errorf("%w: generation.max_options must be at least 2", ErrInvalidConfig)
	}
	if c.Generation.Timeout <= 0 {
		return fmt.Errorf("%w: generation.timeout must be positive", ErrInvalidConfig)
	}
	if c.Sessions.IdleTTL <= 0 {
		return fmt.Errorf("%w: sessions.idle_ttl must be positive", ErrInvalidConfig)
	}
	return nil
}
