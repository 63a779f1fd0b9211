package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pareeksourabh/today-in-emojis-cloud/pkg/log"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage/minio"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage/mongo"
)

// newInitStorageCmd — разовая подготовка инфраструктуры: бакет с
// публичным чтением и lifecycle-правилом, индексы коллекции выпусков.
// Повторный запуск безопасен.
func newInitStorageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-storage",
		Short: "Provision the bucket and database indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInitStorage(cmd.Context())
		},
	}
}

func runInitStorage(ctx context.Context) error {
	ctx, cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	lg := log.From(ctx)

	if cfg.DryRun {
		lg.Info("dry-run mode: storage provisioning skipped")
		return nil
	}

	if err := minio.Provision(ctx, cfg); err != nil {
		return err
	}
	lg.Info("bucket_provisioned", "bucket", cfg.S3.Bucket)

	// Индексы создаёт конструктор хранилища.
	dbCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	defer cancel()

	store, err := mongo.New(dbCtx, cfg)
	if err != nil {
		return err
	}
	lg.Info("indexes_ensured", "collection", cfg.Mongo.Collection)

	return store.Close(ctx)
}
