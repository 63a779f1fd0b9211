package minio

import (
	"bytes"
	"context"
	"fmt"

	mclient "github.com/minio/minio-go/v7"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage"
)

const (
	contentTypePNG = "image/png"
	// Ключи детерминированы и не перезаписываются новыми версиями,
	// поэтому объект можно кэшировать на год.
	cacheControlImmutable = "public, max-age=31536000, immutable"
)

// UploadImage загружает PNG выпуска по ключу YYYY/MM/DD/имя.png
// и возвращает публичный URL, ключ и срок хранения объекта.
// Срок хранения обеспечивается lifecycle-правилом бакета (см. Provision),
// здесь он только вычисляется для записи в документ выпуска.
func (s *AssetsStore) UploadImage(ctx context.Context, input storage.UploadInput) (*storage.UploadResult, error) {
	const op = "storage/minio/UploadImage"

	if len(input.Image) == 0 {
		return nil, fmt.Errorf("%s: empty image", op)
	}

	key := storage.ObjectKey(input.Date, input.PostType, input.Sequence)

	_, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key,
		bytes.NewReader(input.Image), int64(len(input.Image)),
		mclient.PutObjectOptions{
			ContentType:  contentTypePNG,
			CacheControl: cacheControlImmutable,
		})
	if err != nil {
		return nil, fmt.Errorf("%s: put %q: %w", op, key, err)
	}

	return &storage.UploadResult{
		URL:       s.publicURL(key),
		Key:       key,
		ExpiresAt: storage.ExpiresAt(input.CreatedAt, s.cfg.RetentionDays),
	}, nil
}
