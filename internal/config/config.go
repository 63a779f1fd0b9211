// config реализует конфигурацию emojicloud: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация приложения.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env           string          `yaml:"env" env:"ENV" env-default:"local"`
	Project       string          `yaml:"project" env:"PROJECT_ID"`
	DryRun        bool            `yaml:"dry_run" env:"DRY_RUN" env-default:"false"`
	RetentionDays int             `yaml:"retention_days" env:"RETENTION_DAYS" env-default:"30"`
	S3            S3Config        `yaml:"s3"`
	Mongo         MongoConfig     `yaml:"mongo"`
	RSS           RSSConfig       `yaml:"rss"`
	AI            AIConfig        `yaml:"ai"`
	Render        RenderConfig    `yaml:"render"`
	Instagram     InstagramConfig `yaml:"instagram"`
}

// S3Config — настройки объектного хранилища (S3-совместимый API).
//
// Учётные данные разрешаются в порядке: credentials_file -> пара
// access_key/secret_key -> цепочка окружения (AWS_* переменные,
// ~/.aws/credentials, IAM-роль). Отсутствие явных учётных данных вне
// dry-run — предупреждение, а не ошибка.
type S3Config struct {
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Bucket          string `yaml:"bucket" env:"S3_BUCKET"`
	AccessKey       string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey       string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	CredentialsFile string `yaml:"credentials_file" env:"S3_CREDENTIALS_FILE"`
	PublicBaseURL   string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

// HasExplicitCredentials сообщает, заданы ли учётные данные в конфигурации
// (в отличие от неявной цепочки окружения).
func (s S3Config) HasExplicitCredentials() bool {
	return s.CredentialsFile != "" || s.AccessKey != "" || s.SecretKey != ""
}

// MongoConfig — настройки подключения к MongoDB.
// Имя базы берётся из пути в URL (mongodb://host/db); при его отсутствии
// используется имя по умолчанию на стороне хранилища.
type MongoConfig struct {
	URL        string        `yaml:"url" env:"DATABASE_URL" env-required:"true"`
	Collection string        `yaml:"collection" env:"MONGO_COLLECTION" env-default:"editions"`
	Timeout    time.Duration `yaml:"timeout" env:"MONGO_TIMEOUT" env-default:"10s"`
}

// RSSConfig — источники заголовков и лимиты их сбора.
type RSSConfig struct {
	Sources        []string      `yaml:"sources" env:"RSS_SOURCES" env-separator:"," env-default:"https://feeds.bbci.co.uk/news/world/rss.xml,https://news.google.com/rss/search?q=when:24h+allinurl:reuters.com&ceid=US:en&hl=en-US&gl=US,https://www.theguardian.com/world/rss,https://rss.nytimes.com/services/xml/rss/nyt/World.xml"`
	Timeout        time.Duration `yaml:"timeout" env:"RSS_TIMEOUT" env-default:"25s"`
	MaxConcurrent  int           `yaml:"max_concurrent" env:"RSS_MAX_CONCURRENT" env-default:"4"`
	PerSourceLimit int           `yaml:"per_source_limit" env:"RSS_PER_SOURCE_LIMIT" env-default:"10"`
	MaxItems       int           `yaml:"max_items" env:"RSS_MAX_ITEMS" env-default:"40"`
}

// AIConfig — настройки LLM-провайдера.
// base_url меняет адрес API (прокси или локальная заглушка в тестах).
type AIConfig struct {
	APIKey               string   `yaml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL              string   `yaml:"base_url" env:"OPENAI_BASE_URL"`
	Model                string   `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	EssencePalette       []string `yaml:"essence_palette" env:"ESSENCE_EMOJI_PALETTE" env-separator:"," env-default:"😢,😡,😨,😮,🙂,❤️,😔,😤,😬,🙏,🌍,⚖️"`
	EssenceTemperature   float64  `yaml:"essence_temperature" env:"ESSENCE_TEMPERATURE" env-default:"0.7"`
	EssenceFallbackEmoji string   `yaml:"essence_fallback_emoji" env:"ESSENCE_FALLBACK_EMOJI" env-default:"🌍"`
}

// RenderConfig — настройки рендера изображений через ImageMagick.
type RenderConfig struct {
	ConvertBin string `yaml:"convert_bin" env:"CONVERT_BIN" env-default:"convert"`
	Size       int    `yaml:"size" env:"RENDER_SIZE" env-default:"1080"`
}

// InstagramConfig — настройки публикации через Instagram Graph API.
type InstagramConfig struct {
	AccessToken  string        `yaml:"access_token" env:"INSTAGRAM_ACCESS_TOKEN"`
	AccountID    string        `yaml:"account_id" env:"INSTAGRAM_BUSINESS_ACCOUNT_ID"`
	GraphAPIBase string        `yaml:"graph_api_base" env:"GRAPH_API_BASE" env-default:"https://graph.facebook.com/v18.0"`
	PollInterval time.Duration `yaml:"poll_interval" env:"INSTAGRAM_POLL_INTERVAL" env-default:"3s"`
	PollAttempts int           `yaml:"poll_attempts" env:"INSTAGRAM_POLL_ATTEMPTS" env-default:"30"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
// Отсутствие обязательных идентификаторов (проект, база, бакет) — ошибка
// независимо от dry-run; учётные данные проверяются позже и мягче.
func (c *Config) validate() error {
	if c.Project == "" {
		return fmt.Errorf("project is required")
	}

	if c.RetentionDays < 1 || c.RetentionDays > 365 {
		return fmt.Errorf("retention_days must be within [1, 365]")
	}

	if c.S3.Endpoint == "" {
		return fmt.Errorf("s3.endpoint is required")
	}

	if c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}

	if c.Mongo.URL == "" {
		return fmt.Errorf("mongo.url is required")
	}

	if c.Mongo.Collection == "" {
		return fmt.Errorf("mongo.collection is required")
	}

	if c.Mongo.Timeout <= 0 {
		return fmt.Errorf("mongo.timeout must be > 0")
	}

	if len(c.RSS.Sources) == 0 {
		return fmt.Errorf("rss.sources must not be empty")
	}

	if c.RSS.Timeout <= 0 {
		return fmt.Errorf("rss.timeout must be > 0")
	}

	if c.RSS.MaxConcurrent <= 0 {
		return fmt.Errorf("rss.max_concurrent must be > 0")
	}

	if c.RSS.PerSourceLimit <= 0 {
		return fmt.Errorf("rss.per_source_limit must be > 0")
	}

	if c.RSS.MaxItems <= 0 {
		return fmt.Errorf("rss.max_items must be > 0")
	}

	if c.AI.EssenceTemperature < 0 || c.AI.EssenceTemperature > 2 {
		return fmt.Errorf("ai.essence_temperature must be within [0, 2]")
	}

	if len(c.AI.EssencePalette) == 0 {
		return fmt.Errorf("ai.essence_palette must not be empty")
	}

	if c.Render.Size <= 0 {
		return fmt.Errorf("render.size must be > 0")
	}

	if c.Instagram.PollInterval <= 0 {
		return fmt.Errorf("instagram.poll_interval must be > 0")
	}

	if c.Instagram.PollAttempts <= 0 {
		return fmt.Errorf("instagram.poll_attempts must be > 0")
	}

	return nil
}
