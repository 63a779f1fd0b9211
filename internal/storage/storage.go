// Package storage описывает контракты персистентного слоя: документное
// хранилище выпусков и объектное хранилище изображений.
//
// Реализации: storage/mongo и storage/minio — боевые адаптеры,
// storage/dryrun — режим без сетевых вызовов.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
)

// Базовые ошибки слоя хранилища.
var (
	// ErrNotFound — запрошенный выпуск отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — выпуск с таким идентификатором уже сохранён.
	ErrAlreadyExists = errors.New("already exists")
)

// UploadInput — параметры загрузки изображения выпуска.
//
//   - Image — содержимое PNG;
//   - Date — дата выпуска (YYYY-MM-DD), определяет префикс ключа;
//   - PostType/Sequence — определяют имя файла (см. Filename);
//   - CreatedAt — момент формирования выпуска, база для срока хранения.
type UploadInput struct {
	Image     []byte
	Date      string
	PostType  models.PostType
	Sequence  int64
	CreatedAt time.Time
}

// UploadResult — результат загрузки изображения.
type UploadResult struct {
	// URL — публичный адрес загруженного объекта.
	URL string
	// Key — ключ объекта в бакете (YYYY/MM/DD/имя.png).
	Key string
	// ExpiresAt — расчётный момент истечения срока хранения.
	ExpiresAt time.Time
}

// EditionsStorage — контракт документного хранилища выпусков.
type EditionsStorage interface {
	// SaveEdition сохраняет новый выпуск.
	// Возможные ошибки: ErrAlreadyExists, прочее — как есть.
	SaveEdition(ctx context.Context, edition models.Edition) error

	// EditionByID возвращает выпуск по идентификатору.
	// Возможные ошибки: ErrNotFound, прочее — как есть.
	EditionByID(ctx context.Context, id string) (*models.Edition, error)

	// EditionsByDate возвращает все выпуски за дату,
	// упорядоченные по времени создания (старые раньше).
	EditionsByDate(ctx context.Context, date string) ([]models.Edition, error)

	// RecentEditions возвращает выпуски за последние days календарных дней,
	// упорядоченные от новых к старым.
	RecentEditions(ctx context.Context, days int) ([]models.Edition, error)

	// NextSequence атомарно выделяет следующий порядковый номер
	// обычного выпуска за дату (1 для первого).
	NextSequence(ctx context.Context, date string) (int64, error)

	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error

	// Close освобождает ресурсы подключения.
	Close(ctx context.Context) error
}

// AssetsStorage — контракт объектного хранилища изображений.
type AssetsStorage interface {
	// UploadImage загружает PNG по детерминированному ключу и возвращает
	// публичный URL, ключ и срок хранения.
	UploadImage(ctx context.Context, input UploadInput) (*UploadResult, error)

	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
}
