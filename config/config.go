package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`

	DatabaseURL       string        `mapstructure:"database_url"`
	DBHost            string        `mapstructure:"db_host"`
	DBPort            string        `mapstructure:"db_port"`
	DBUser            string        `mapstructure:"db_user"`
	DBPassword        string        `mapstructure:"db_password"`
	DBName            string        `mapstructure:"db_name"`
	DBSSLMode         string        `mapstructure:"db_sslmode"`
	DBMaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	DBConnMaxIdleTime time.Duration `mapstructure:"db_conn_max_idle_time"`

	DefaultRating    int `mapstructure:"default_rating"`
	DefaultGameCount int `mapstructure:"default_game_count"`

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	RedisURL            string        `mapstructure:"redis_url"`
	LeaderboardCacheTTL time.Duration `mapstructure:"leaderboard_cache_ttl"`

	AMQPURL      string `mapstructure:"amqp_url"`
	AMQPExchange string `mapstructure:"amqp_exchange"`

	SchedulerEnabled  bool          `mapstructure:"scheduler_enabled"`
	StaleChallengeAge time.Duration `mapstructure:"stale_challenge_age"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// ServerURL is where ladderctl finds the API.
	ServerURL string `mapstructure:"ladder_server_url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")

	v.SetDefault("database_url", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "ladder")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 10)
	v.SetDefault("db_conn_max_lifetime", 5*time.Minute)
	v.SetDefault("db_conn_max_idle_time", time.Minute)

	v.SetDefault("default_rating", 1200)
	v.SetDefault("default_game_count", 10)

	v.SetDefault("cors_allowed_origins", []string{"*"})

	v.SetDefault("redis_url", "")
	v.SetDefault("leaderboard_cache_ttl", 30*time.Second)

	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "ladder.events")

	v.SetDefault("scheduler_enabled", true)
	v.SetDefault("stale_challenge_age", 7*24*time.Hour)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("ladder_server_url", "http://localhost:8080")
}

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Load reads the configuration from the working directory.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom layers defaults, dir/config.yaml, dir/.env and the environment,
// later sources winning.
func LoadFrom(dir string) (*Config, error) {
	if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DefaultRating < 1 {
		return fmt.Errorf("DEFAULT_RATING must be at least 1, got %d", c.DefaultRating)
	}
	if c.DefaultGameCount < 1 {
		return fmt.Errorf("DEFAULT_GAME_COUNT must be at least 1, got %d", c.DefaultGameCount)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	if c.StaleChallengeAge <= 0 {
		return fmt.Errorf("STALE_CHALLENGE_AGE must be positive, got %s", c.StaleChallengeAge)
	}
	return nil
}

// DSN is DATABASE_URL when set, otherwise a key/value DSN built from the
// DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
