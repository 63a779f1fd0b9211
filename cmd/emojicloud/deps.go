package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pareeksourabh/today-in-emojis-cloud/pkg/log"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/service"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage/dryrun"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage/minio"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage/mongo"
)

// Константы окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// closeTimeout — предел на закрытие соединений при завершении команды.
const closeTimeout = 5 * time.Second

// setup загружает конфигурацию, настраивает логгер по окружению и
// кладёт его в контекст вместе с идентификатором запуска: все слои
// ниже пишут в один логгер через pkg/log.
func setup(ctx context.Context) (context.Context, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// Флаг сильнее конфигурации: --dry-run гарантирует прогон без
	// единого сетевого вызова независимо от окружения.
	if forceDry {
		cfg.DryRun = true
	}

	lg := setupLogger(cfg.Env).With(
		slog.String("run_id", uuid.NewString()),
		slog.String("project", cfg.Project),
	)
	slog.SetDefault(lg)

	lg.Info("starting emojicloud", "env", cfg.Env, "dry_run", cfg.DryRun)

	if !cfg.DryRun && !cfg.S3.HasExplicitCredentials() {
		lg.Warn("no explicit s3 credentials, relying on env/file/iam chain")
	}

	return log.Into(ctx, lg), cfg, nil
}

// buildService собирает сервис выпусков поверх реальных хранилищ,
// а в dry-run — поверх журналирующих заглушек без сетевых вызовов.
// Возвращает функцию завершения, закрывающую соединения.
func buildService(ctx context.Context, cfg *config.Config) (*service.Service, func(), error) {
	lg := log.From(ctx)

	if cfg.DryRun {
		lg.Info("dry-run mode: storages are no-op")
		return service.New(dryrun.NewEditionsStore(), dryrun.NewAssetsStore(cfg), *cfg), func() {}, nil
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	editions, err := mongo.New(dbCtx, cfg)
	dbCancel()
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: %w", err)
	}
	lg.Info("mongo_connected")

	assets, err := minio.New(ctx, cfg)
	if err != nil {
		_ = editions.Close(context.Background())
		return nil, nil, fmt.Errorf("minio: %w", err)
	}
	lg.Info("minio_connected")

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()

		if err := editions.Close(closeCtx); err != nil {
			lg.Warn("mongo_close_failed", "err", err)
		}
	}

	return service.New(editions, assets, *cfg), cleanup, nil
}

// setupLogger — текстовый debug-лог для local, JSON для dev/prod.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
