// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Tools    ToolsConfig    `mapstructure:"tools"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Usage    UsageConfig    `mapstructure:"usage"`
	CRM      CRMConfig      `mapstructure:"crm"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// EngineConfig holds settings for the external orchestration engine binding.
type EngineConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
	AgentsPath  string  `mapstructure:"agents_path"`
	TasksPath   string  `mapstructure:"tasks_path"`
	MaxLeads    int     `mapstructure:"max_leads"` // advisory, passed through as pipeline input
	Temperature float64 `mapstructure:"temperature"`
}

// ToolsConfig holds credentials for the engine's tool bindings. The tools
// themselves run inside the engine; this service only verifies the
// credentials exist before declaring the engine available.
type ToolsConfig struct {
	WebSearch struct {
		APIKey string `mapstructure:"api_key"`
	} `mapstructure:"web_search"`
	Scrape struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"scrape"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	TTL     int  `mapstructure:"ttl"` // seconds
}

type UsageConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	PersistToDB     bool    `mapstructure:"persist_to_db"`
	InputPricePerM  float64 `mapstructure:"input_price_per_m"`  // USD per 1M prompt tokens
	OutputPricePerM float64 `mapstructure:"output_price_per_m"` // USD per 1M completion tokens
}

type CRMConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	BaseURL   string `mapstructure:"base_url"`
	AuthToken string `mapstructure:"auth_token"`
	MinScore  int    `mapstructure:"min_score"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
