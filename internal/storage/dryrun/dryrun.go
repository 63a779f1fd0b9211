// dryrun предоставляет реализации storage.EditionsStorage и
// storage.AssetsStorage без сетевых вызовов: записи логируются и
// пропускаются, чтения возвращают пустые результаты.
//
// Вычислимые части результата (идентификаторы, ключи объектов, сроки
// хранения) считаются теми же функциями, что и в боевых адаптерах,
// поэтому прогон с одинаковыми часами даёт те же значения, что и
// реальная запись.
package dryrun

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage"
	"github.com/pareeksourabh/today-in-emojis-cloud/pkg/log"
)

// EditionsStore — документное хранилище в режиме dry-run.
type EditionsStore struct{}

// NewEditionsStore возвращает хранилище выпусков без подключения к БД.
func NewEditionsStore() *EditionsStore {
	return &EditionsStore{}
}

var _ storage.EditionsStorage = (*EditionsStore)(nil)

// SaveEdition логирует и пропускает запись.
func (s *EditionsStore) SaveEdition(ctx context.Context, edition models.Edition) error {
	log.From(ctx).Info("dry_run_skip_save_edition",
		slog.String("edition_id", edition.ID),
		slog.String("post_type", string(edition.PostType)),
	)

	return nil
}

// EditionByID в dry-run всегда отвечает «не найдено»: записей нет.
func (s *EditionsStore) EditionByID(ctx context.Context, id string) (*models.Edition, error) {
	const op = "storage/dryrun/EditionByID"

	log.From(ctx).Info("dry_run_empty_lookup", slog.String("edition_id", id))

	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// EditionsByDate возвращает пустой список.
func (s *EditionsStore) EditionsByDate(ctx context.Context, date string) ([]models.Edition, error) {
	log.From(ctx).Info("dry_run_empty_list", slog.String("date", date))

	return nil, nil
}

// RecentEditions возвращает пустой список.
func (s *EditionsStore) RecentEditions(ctx context.Context, days int) ([]models.Edition, error) {
	log.From(ctx).Info("dry_run_empty_list", slog.Int("days", days))

	return nil, nil
}

// NextSequence считает день пустым и выделяет номер 1.
func (s *EditionsStore) NextSequence(ctx context.Context, date string) (int64, error) {
	log.From(ctx).Info("dry_run_sequence", slog.String("date", date), slog.Int64("seq", 1))

	return 1, nil
}

// Ping всегда успешен: проверять нечего.
func (s *EditionsStore) Ping(ctx context.Context) error { return nil }

// Close всегда успешен.
func (s *EditionsStore) Close(ctx context.Context) error { return nil }

// AssetsStore — объектное хранилище в режиме dry-run.
type AssetsStore struct {
	cfg *config.Config
}

// NewAssetsStore возвращает хранилище изображений без клиента S3.
func NewAssetsStore(cfg *config.Config) *AssetsStore {
	return &AssetsStore{cfg: cfg}
}

var _ storage.AssetsStorage = (*AssetsStore)(nil)

// UploadImage пропускает загрузку, но возвращает тот же результат, что и
// боевой адаптер: ключ, публичный URL и срок хранения.
func (s *AssetsStore) UploadImage(ctx context.Context, input storage.UploadInput) (*storage.UploadResult, error) {
	const op = "storage/dryrun/UploadImage"

	if len(input.Image) == 0 {
		return nil, fmt.Errorf("%s: empty image", op)
	}

	key := storage.ObjectKey(input.Date, input.PostType, input.Sequence)
	expires := storage.ExpiresAt(input.CreatedAt, s.cfg.RetentionDays)

	log.From(ctx).Info("dry_run_skip_upload",
		slog.String("key", key),
		slog.Int("size_bytes", len(input.Image)),
		slog.Time("expires_at", expires),
	)

	return &storage.UploadResult{
		URL:       s.publicURL(key),
		Key:       key,
		ExpiresAt: expires,
	}, nil
}

// Ping всегда успешен: проверять нечего.
func (s *AssetsStore) Ping(ctx context.Context) error { return nil }

// publicURL повторяет правило боевого адаптера: приоритет у
// public_base_url, иначе endpoint (с "http://" для адресов без схемы,
// как у minio-go при Secure=false) плюс имя бакета.
func (s *AssetsStore) publicURL(key string) string {
	if base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}

	endpoint := strings.TrimRight(s.cfg.S3.Endpoint, "/")
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	return endpoint + "/" + s.cfg.S3.Bucket + "/" + key
}
