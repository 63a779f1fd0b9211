package minio

import (
	"context"
	"fmt"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
)

// Provision готовит бакет к работе: создаёт его при отсутствии, открывает
// анонимное чтение объектов и включает lifecycle-правило истечения через
// retention_days суток. Запускается только командой init-storage;
// повторный запуск безопасен.
func Provision(ctx context.Context, cfg *config.Config) error {
	const op = "storage/minio/Provision"

	client, err := newClient(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3.Bucket)
	if err != nil {
		return fmt.Errorf("%s: bucket exists: %w", op, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.S3.Bucket, mclient.MakeBucketOptions{Region: cfg.S3.Region}); err != nil {
			return fmt.Errorf("%s: make bucket: %w", op, err)
		}
	}

	if err := client.SetBucketPolicy(ctx, cfg.S3.Bucket, publicReadPolicy(cfg.S3.Bucket)); err != nil {
		return fmt.Errorf("%s: set policy: %w", op, err)
	}

	lc := lifecycle.NewConfiguration()
	lc.Rules = []lifecycle.Rule{
		{
			ID:         "expire-editions",
			Status:     "Enabled",
			Expiration: lifecycle.Expiration{Days: lifecycle.ExpirationDays(cfg.RetentionDays)},
		},
	}

	if err := client.SetBucketLifecycle(ctx, cfg.S3.Bucket, lc); err != nil {
		return fmt.Errorf("%s: set lifecycle: %w", op, err)
	}

	return nil
}

// publicReadPolicy — политика анонимного чтения объектов бакета.
func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}
