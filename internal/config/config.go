package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StorageDriverMySQL  = "mysql"
	StorageDriverMemory = "memory"
)

type Config struct {
	App        AppConfig        `toml:"app"`
	Auth       AuthConfig       `toml:"auth"`
	Storage    StorageConfig    `toml:"storage"`
	MySQL      MySQLConfig      `toml:"mysql"`
	Redis      RedisConfig      `toml:"redis"`
	RabbitMQ   RabbitMQConfig   `toml:"rabbitmq"`
	LLM        LLMConfig        `toml:"llm"`
	News       NewsConfig       `toml:"news"`
	Transcript TranscriptConfig `toml:"transcript"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	JWTExpireHour int    `toml:"jwt_expire_hour"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // "mysql" or "memory"
}

type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Params   string `toml:"params"`
}

// RedisConfig controls the headline cache. An empty Addr disables caching
// entirely; every request then goes to the news provider.
type RedisConfig struct {
	Addr               string `toml:"addr"`
	Password           string `toml:"password"`
	DB                 int    `toml:"db"`
	HeadlineTTLSeconds int    `toml:"headline_ttl_seconds"`
}

// RabbitMQConfig controls asynchronous article ingestion. An empty URL makes
// the news service persist fetched articles synchronously instead.
type RabbitMQConfig struct {
	URL                string `toml:"url"`
	ArticleIngestQueue string `toml:"article_ingest_queue"`
}

type LLMConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

// NewsConfig points at a NewsAPI-compatible provider. When APIKey is empty
// the RSS feed table is used instead.
type NewsConfig struct {
	BaseURL string            `toml:"base_url"`
	APIKey  string            `toml:"api_key"`
	Country string            `toml:"country"`
	Feeds   map[string]string `toml:"feeds"` // category -> RSS feed URL
}

type TranscriptConfig struct {
	BaseURL string `toml:"base_url"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.MySQL.User,
		c.MySQL.Password,
		c.MySQL.Host,
		c.MySQL.Port,
		c.MySQL.DB,
		c.MySQL.Params,
	)
}

// JWTExpiry returns the configured token lifetime (default seven days).
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.Auth.JWTExpireHour) * time.Hour
}

func (c *Config) HeadlineTTL() time.Duration {
	return time.Duration(c.Redis.HeadlineTTLSeconds) * time.Second
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "newsprep",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			JWTSecret:     "change-me-in-production",
			JWTExpireHour: 168, // 7 days
		},
		Storage: StorageConfig{
			Driver: StorageDriverMemory,
		},
		MySQL: MySQLConfig{
			Host:     "127.0.0.1",
			Port:     3306,
			User:     "root",
			Password: "",
			DB:       "newsprep",
			Params:   "parseTime=true&loc=Local&charset=utf8mb4",
		},
		Redis: RedisConfig{
			Addr:               "",
			Password:           "",
			DB:                 0,
			HeadlineTTLSeconds: 300,
		},
		RabbitMQ: RabbitMQConfig{
			URL:                "",
			ArticleIngestQueue: "news.article.ingest",
		},
		LLM: LLMConfig{
			BaseURL: "https://api.openai.com/v1",
			APIKey:  "",
			Model:   "gpt-4o-mini",
		},
		News: NewsConfig{
			BaseURL: "https://newsapi.org/v2",
			APIKey:  "",
			Country: "in",
			Feeds: map[string]string{
				"general": "https://feeds.bbci.co.uk/news/world/rss.xml",
			},
		},
		Transcript: TranscriptConfig{
			BaseURL: "",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.JWTExpireHour = getEnvAsInt("JWT_EXPIRE_HOUR", cfg.Auth.JWTExpireHour)

	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", cfg.Storage.Driver)

	cfg.MySQL.Host = getEnv("MYSQL_HOST", cfg.MySQL.Host)
	cfg.MySQL.Port = getEnvAsInt("MYSQL_PORT", cfg.MySQL.Port)
	cfg.MySQL.User = getEnv("MYSQL_USER", cfg.MySQL.User)
	cfg.MySQL.Password = getEnv("MYSQL_PASSWORD", cfg.MySQL.Password)
	cfg.MySQL.DB = getEnv("MYSQL_DB", cfg.MySQL.DB)
	cfg.MySQL.Params = getEnv("MYSQL_PARAMS", cfg.MySQL.Params)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.HeadlineTTLSeconds = getEnvAsInt("REDIS_HEADLINE_TTL_SECONDS", cfg.Redis.HeadlineTTLSeconds)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.ArticleIngestQueue = getEnv("RABBITMQ_ARTICLE_INGEST_QUEUE", cfg.RabbitMQ.ArticleIngestQueue)

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)

	cfg.News.BaseURL = getEnv("NEWS_BASE_URL", cfg.News.BaseURL)
	cfg.News.APIKey = getEnv("NEWS_API_KEY", cfg.News.APIKey)
	cfg.News.Country = getEnv("NEWS_COUNTRY", cfg.News.Country)

	cfg.Transcript.BaseURL = getEnv("TRANSCRIPT_BASE_URL", cfg.Transcript.BaseURL)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
