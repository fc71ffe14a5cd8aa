package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the server configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	AI       AIConfig       `mapstructure:"ai"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig represents database configuration. URL takes precedence
// over the individual fields when set.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"`
}

// AuthConfig controls the optional session-cookie gate in front of the API.
// With Enabled false the API is open; both deployment variants share one
// code path.
type AuthConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	JWTSecret    string `mapstructure:"jwt_secret"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

// AIConfig points at an OpenAI-compatible chat-completion endpoint.
type AIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Optional .env next to the binary, same as the original deployment
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	viper.SetDefault("database.url", getEnv("DATABASE_URL", ""))
	viper.SetDefault("database.host", getEnv("PG_HOST", "localhost"))
	viper.SetDefault("database.port", getEnvInt("PG_PORT", 5432))
	viper.SetDefault("database.user", getEnv("PG_USER", "postgres"))
	viper.SetDefault("database.password", getEnv("PG_PASSWORD", ""))
	viper.SetDefault("database.name", getEnv("PG_DATABASE", "jrn"))
	viper.SetDefault("database.ssl_mode", getEnv("PG_SSL_MODE", "disable"))
	viper.SetDefault("server.host", getEnv("SERVER_HOST", "0.0.0.0"))
	viper.SetDefault("server.port", getEnvInt("PORT", 3000))
	viper.SetDefault("server.static_dir", getEnv("STATIC_DIR", ""))
	viper.SetDefault("auth.enabled", getEnvBool("AUTH_ENABLED", false))
	viper.SetDefault("auth.jwt_secret", getEnv("JWT_SECRET", ""))
	viper.SetDefault("auth.password", getEnv("ACCESS_PASSWORD", ""))
	viper.SetDefault("auth.password_hash", getEnv("ACCESS_PASSWORD_HASH", ""))
	viper.SetDefault("ai.base_url", getEnv("AI_BASE_URL", "https://api.mistral.ai/v1"))
	viper.SetDefault("ai.api_key", getEnv("MISTRAL_API_KEY", ""))
	viper.SetDefault("ai.model", getEnv("AI_MODEL", "mistral-large-latest"))
	viper.SetDefault("log.level", getEnv("LOG_LEVEL", "info"))
	viper.SetDefault("log.format", getEnv("LOG_FORMAT", "console"))

	// Enable environment variable support
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we'll use defaults and env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.Auth.Enabled && config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required when auth is enabled")
	}

	return &config, nil
}

// GetDatabaseDSN returns the DSN for the Postgres connection.
func (c *Config) GetDatabaseDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Name, c.Database.SSLMode)
}

// ListenAddr returns the host:port pair the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
