package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeConfigFile пишет YAML во временную директорию и возвращает путь.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

const validYAML = `env: dev
project: today-in-emojis
retention_days: 45
s3:
  endpoint: http://localhost:9000
  bucket: editions-test
  public_base_url: http://cdn.local
mongo:
  url: mongodb://localhost:27017/emojis
ai:
  api_key: test-key
`

func TestLoad_ExplicitPath(t *testing.T) {
	path := writeConfigFile(t, validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "today-in-emojis", cfg.Project)
	require.Equal(t, 45, cfg.RetentionDays)
	require.False(t, cfg.DryRun)
	require.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	require.Equal(t, "editions-test", cfg.S3.Bucket)
	require.Equal(t, "http://cdn.local", cfg.S3.PublicBaseURL)
	require.Equal(t, "mongodb://localhost:27017/emojis", cfg.Mongo.URL)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "us-east-1", cfg.S3.Region)
	require.Equal(t, "editions", cfg.Mongo.Collection)
	require.Equal(t, 10*time.Second, cfg.Mongo.Timeout)

	require.Len(t, cfg.RSS.Sources, 4)
	require.Equal(t, "https://feeds.bbci.co.uk/news/world/rss.xml", cfg.RSS.Sources[0])
	require.Equal(t, 25*time.Second, cfg.RSS.Timeout)
	require.Equal(t, 10, cfg.RSS.PerSourceLimit)
	require.Equal(t, 40, cfg.RSS.MaxItems)

	require.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	require.Len(t, cfg.AI.EssencePalette, 12)
	require.InEpsilon(t, 0.7, cfg.AI.EssenceTemperature, 1e-9)
	require.Equal(t, "🌍", cfg.AI.EssenceFallbackEmoji)

	require.Equal(t, "convert", cfg.Render.ConvertBin)
	require.Equal(t, 1080, cfg.Render.Size)

	require.Equal(t, "https://graph.facebook.com/v18.0", cfg.Instagram.GraphAPIBase)
	require.Equal(t, 3*time.Second, cfg.Instagram.PollInterval)
	require.Equal(t, 30, cfg.Instagram.PollAttempts)
}

func TestLoad_EnvOverlay(t *testing.T) {
	path := writeConfigFile(t, validYAML)

	t.Setenv("RETENTION_DAYS", "7")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("ESSENCE_TEMPERATURE", "0.2")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 7, cfg.RetentionDays)
	require.True(t, cfg.DryRun)
	require.InEpsilon(t, 0.2, cfg.AI.EssenceTemperature, 1e-9)
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	path := writeConfigFile(t, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "today-in-emojis", cfg.Project)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat failed")
}

// validConfig — полностью валидная конфигурация для проверок validate.
func validConfig() Config {
	return Config{
		Env:           "local",
		Project:       "today-in-emojis",
		RetentionDays: 30,
		S3: S3Config{
			Endpoint: "http://localhost:9000",
			Region:   "us-east-1",
			Bucket:   "editions",
		},
		Mongo: MongoConfig{
			URL:        "mongodb://localhost:27017/emojis",
			Collection: "editions",
			Timeout:    10 * time.Second,
		},
		RSS: RSSConfig{
			Sources:        []string{"https://example.com/rss.xml"},
			Timeout:        25 * time.Second,
			MaxConcurrent:  4,
			PerSourceLimit: 10,
			MaxItems:       40,
		},
		AI: AIConfig{
			Model:                "gpt-4o-mini",
			EssencePalette:       []string{"🌍", "🙂"},
			EssenceTemperature:   0.7,
			EssenceFallbackEmoji: "🌍",
		},
		Render: RenderConfig{ConvertBin: "convert", Size: 1080},
		Instagram: InstagramConfig{
			GraphAPIBase: "https://graph.facebook.com/v18.0",
			PollInterval: 3 * time.Second,
			PollAttempts: 30,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing_project", mutate: func(c *Config) { c.Project = "" }, wantErr: "project is required"},
		{name: "retention_zero", mutate: func(c *Config) { c.RetentionDays = 0 }, wantErr: "retention_days"},
		{name: "retention_over_year", mutate: func(c *Config) { c.RetentionDays = 366 }, wantErr: "retention_days"},
		{name: "missing_endpoint", mutate: func(c *Config) { c.S3.Endpoint = "" }, wantErr: "s3.endpoint is required"},
		{name: "missing_bucket", mutate: func(c *Config) { c.S3.Bucket = "" }, wantErr: "s3.bucket is required"},
		{name: "missing_mongo_url", mutate: func(c *Config) { c.Mongo.URL = "" }, wantErr: "mongo.url is required"},
		{name: "missing_collection", mutate: func(c *Config) { c.Mongo.Collection = "" }, wantErr: "mongo.collection is required"},
		{name: "no_rss_sources", mutate: func(c *Config) { c.RSS.Sources = nil }, wantErr: "rss.sources"},
		{name: "bad_temperature", mutate: func(c *Config) { c.AI.EssenceTemperature = 2.5 }, wantErr: "essence_temperature"},
		{name: "empty_palette", mutate: func(c *Config) { c.AI.EssencePalette = nil }, wantErr: "essence_palette"},
		{name: "zero_poll_attempts", mutate: func(c *Config) { c.Instagram.PollAttempts = 0 }, wantErr: "poll_attempts"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestHasExplicitCredentials(t *testing.T) {
	require.False(t, S3Config{}.HasExplicitCredentials())
	require.True(t, S3Config{AccessKey: "key"}.HasExplicitCredentials())
	require.True(t, S3Config{SecretKey: "secret"}.HasExplicitCredentials())
	require.True(t, S3Config{CredentialsFile: "/etc/s3/creds"}.HasExplicitCredentials())
}
