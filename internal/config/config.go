// Package config loads service configuration from .env, an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the complete service configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	Notifier   NotifierConfig   `mapstructure:"notifier"`
	SendGrid   SendGridConfig   `mapstructure:"sendgrid"`
	Maps       MapsConfig       `mapstructure:"maps"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Redis      RedisConfig      `mapstructure:"redis"`
	DeepSeek   DeepSeekConfig   `mapstructure:"deepseek"`
	Advisor    AdvisorConfig    `mapstructure:"advisor"`
	Knowledge  KnowledgeConfig  `mapstructure:"knowledge"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectRetries  int           `mapstructure:"connect_retries"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

// DSN returns the connection string, preferring a full URL when one is set
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC connect_timeout=10",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type NotifierConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	Lookahead time.Duration `mapstructure:"lookahead"`
}

type SendGridConfig struct {
	APIKey    string `mapstructure:"api_key"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_name"`
	AppURL    string `mapstructure:"app_url"`
}

type MapsConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type CloudinaryConfig struct {
	URL    string `mapstructure:"url"`
	Folder string `mapstructure:"folder"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DeepSeekConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AdvisorConfig struct {
	ToolCommand string   `mapstructure:"tool_command"`
	ToolArgs    []string `mapstructure:"tool_args"`
	MaxSteps    int      `mapstructure:"max_steps"`
}

type KnowledgeConfig struct {
	Dir        string        `mapstructure:"dir"`
	OllamaURL  string        `mapstructure:"ollama_url"`
	EmbedModel string        `mapstructure:"embed_model"`
	TopK       int           `mapstructure:"top_k"`
	ChunkSize  int           `mapstructure:"chunk_size"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "cardiomed")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.connect_retries", 5)
	v.SetDefault("database.retry_delay", 5*time.Second)
	v.SetDefault("database.slow_threshold", time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("notifier.enabled", false)
	v.SetDefault("notifier.interval", 5*time.Minute)
	v.SetDefault("notifier.lookahead", 30*time.Minute)

	v.SetDefault("sendgrid.api_key", "")
	v.SetDefault("sendgrid.from_email", "reminders@cardiomed.app")
	v.SetDefault("sendgrid.from_name", "CardioMed")
	v.SetDefault("sendgrid.app_url", "http://localhost:3000")

	v.SetDefault("maps.api_key", "")

	v.SetDefault("cloudinary.url", "")
	v.SetDefault("cloudinary.folder", "bp_readings")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("deepseek.api_key", "")
	v.SetDefault("deepseek.model", "deepseek-chat")
	v.SetDefault("deepseek.timeout", 60*time.Second)

	v.SetDefault("advisor.tool_command", "")
	v.SetDefault("advisor.tool_args", []string{})
	v.SetDefault("advisor.max_steps", 8)

	v.SetDefault("knowledge.dir", "knowledge")
	v.SetDefault("knowledge.ollama_url", "http://localhost:11434")
	v.SetDefault("knowledge.embed_model", "nomic-embed-text")
	v.SetDefault("knowledge.top_k", 4)
	v.SetDefault("knowledge.chunk_size", 800)
	v.SetDefault("knowledge.cache_ttl", time.Hour)
}

// Load reads .env (if present), the YAML file named by CARDIOMED_CONFIG (if
// set) and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("CARDIOMED_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindLegacyEnv keeps the variable names used by existing deployments working
func bindLegacyEnv(v *viper.Viper) {
	aliases := map[string][]string{
		"server.mode":          {"GIN_MODE"},
		"server.port":          {"PORT", "SERVER_PORT"},
		"database.host":        {"DB_HOST"},
		"database.port":        {"DB_PORT"},
		"database.user":        {"DB_USER"},
		"database.password":    {"DB_PASSWORD"},
		"database.name":        {"DB_NAME"},
		"database.sslmode":     {"DB_SSL_MODE"},
		"sendgrid.api_key":     {"SENDGRID_API_KEY"},
		"maps.api_key":         {"GOOGLE_MAPS_API_KEY"},
		"cloudinary.url":       {"CLOUDINARY_URL"},
		"redis.addr":           {"REDIS_ADDR"},
		"deepseek.api_key":     {"DEEPSEEK_API_KEY"},
		"knowledge.ollama_url": {"OLLAMA_URL"},
	}
	for key, envs := range aliases {
		_ = v.BindEnv(append([]string{key, strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, envs...)...)
	}
}

// Validate checks values that have no usable default
func (c *Config) Validate() error {
	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "") {
		return errors.New("database url or host, name and user must be set")
	}
	if c.Notifier.Enabled {
		if c.SendGrid.APIKey == "" {
			return errors.New("notifier is enabled but sendgrid.api_key is empty")
		}
		if c.Notifier.Interval <= 0 || c.Notifier.Lookahead <= 0 {
			return errors.New("notifier interval and lookahead must be positive")
		}
	}
	if c.Advisor.MaxSteps <= 0 {
		return errors.New("advisor.max_steps must be positive")
	}
	if c.Knowledge.TopK <= 0 {
		return errors.New("knowledge.top_k must be positive")
	}
	return nil
}
