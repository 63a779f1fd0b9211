package service

// Тесты сервисного слоя (internal/service/produce.go).
//
//  Проверяем:
//  - валидацию входов Produce (дата, тип, состав, изображение);
//  - маппинг ошибок storage -> service (AlreadyExists / Internal);
//  - порядок шагов: номер -> загрузка -> запись, и аргументы каждого вызова;
//  - единое показание часов (timestamp == source.created_at == база срока);
//  - happy-path normal и essence (essence без выделения номера);
//  - детерминизм dry-run: с фиксированными часами результат совпадает
//    с тем, что дала бы реальная запись.
//
// Подготовка окружения:
//   # 1) Сгенерировать моки интерфейсов хранилищ:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//
//   # 2) Запустить тесты:
//   go test ./internal/service -v -race -count=1
//
// Примечание: моки сгенерированы в пакете /mocks
// (MockEditionsStorage, MockAssetsStorage).

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage/dryrun"
	"github.com/pareeksourabh/today-in-emojis-cloud/mocks"
	"github.com/stretchr/testify/require"
)

// testNow — фиксированные часы для всех тестов производства.
var testNow = time.Date(2025, 12, 24, 10, 30, 0, 0, time.UTC)

// newServiceWithMocks — поднимает сервис с моками обоих хранилищ
// и фиксированными часами.
func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockEditionsStorage, *mocks.MockAssetsStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	me := mocks.NewMockEditionsStorage(ctrl)
	ma := mocks.NewMockAssetsStorage(ctrl)
	s := &Service{
		editions: me,
		assets:   ma,
		cfg:      config.Config{RetentionDays: 30},
		now:      func() time.Time { return testNow },
	}
	return s, me, ma, ctrl
}

// testEmojis — быстрый хелпер: пять позиций обычного выпуска.
func testEmojis() []models.EmojiItem {
	return []models.EmojiItem{
		{Char: "🌍", Label: "world", URL: "https://example.com/1", Title: "Summit", Summary: "Leaders met."},
		{Char: "⚡", Label: "energy", URL: "https://example.com/2", Title: "Grid", Summary: "Power restored."},
		{Char: "🤝", Label: "deal", URL: "https://example.com/3", Title: "Accord", Summary: "Deal signed."},
		{Char: "🌱", Label: "growth", URL: "https://example.com/4", Title: "Economy", Summary: "Markets up."},
		{Char: "🎭", Label: "culture", URL: "https://example.com/5", Title: "Festival", Summary: "Opening night."},
	}
}

// testEssence — быстрый хелпер: эссенция дня.
func testEssence() *models.Essence {
	return &models.Essence{
		EmotionLabel: "hopeful",
		Emoji:        "🌤",
		Rationale:    "Cautious optimism across most stories.",
		Palette:      []string{"🌤", "🌧", "🔥"},
		Temperature:  0.7,
	}
}

func normalInput() ProduceInput {
	return ProduceInput{
		Date:       "2025-12-24",
		PostType:   models.PostTypeNormal,
		Emojis:     testEmojis(),
		Image:      []byte("png-bytes"),
		RSSSources: []string{"https://feeds.example.com/rss"},
		Model:      "gpt-4o-mini",
		Provider:   "openai",
	}
}

// Валидация: дата, тип, состав по типу, изображение.
// Ни одно хранилище при этом не должно вызываться.
func TestService_Produce_Validation(t *testing.T) {
	s, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// пустая дата
	in := normalInput()
	in.Date = "   "
	_, err := s.Produce(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// не YYYY-MM-DD
	in = normalInput()
	in.Date = "24-12-2025"
	_, err = s.Produce(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// несуществующая дата
	in = normalInput()
	in.Date = "2025-13-40"
	_, err = s.Produce(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// неизвестный тип
	in = normalInput()
	in.PostType = models.PostType("weekly")
	_, err = s.Produce(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// normal без эмодзи
	in = normalInput()
	in.Emojis = nil
	_, err = s.Produce(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// essence без эссенции
	in = normalInput()
	in.PostType = models.PostTypeEssence
	in.Essence = nil
	_, err = s.Produce(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// пустое изображение
	in = normalInput()
	in.Image = nil
	_, err = s.Produce(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Маппинг: ошибки хранилищ на каждом шаге конвейера.
func TestService_Produce_StorageErrors(t *testing.T) {
	s, me, ma, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// NextSequence падает -> Internal, загрузки и записи нет.
	me.EXPECT().
		NextSequence(gomock.Any(), "2025-12-24").
		Return(int64(0), errors.New("db down"))
	_, err := s.Produce(context.Background(), normalInput())
	require.ErrorIs(t, err, ErrInternal)

	// UploadImage падает -> Internal, записи нет.
	me.EXPECT().
		NextSequence(gomock.Any(), "2025-12-24").
		Return(int64(1), nil)
	ma.EXPECT().
		UploadImage(gomock.Any(), gomock.AssignableToTypeOf(storage.UploadInput{})).
		Return(nil, errors.New("s3 down"))
	_, err = s.Produce(context.Background(), normalInput())
	require.ErrorIs(t, err, ErrInternal)

	// SaveEdition: дубликат -> AlreadyExists.
	me.EXPECT().
		NextSequence(gomock.Any(), "2025-12-24").
		Return(int64(1), nil)
	ma.EXPECT().
		UploadImage(gomock.Any(), gomock.Any()).
		Return(&storage.UploadResult{URL: "u", Key: "k"}, nil)
	me.EXPECT().
		SaveEdition(gomock.Any(), gomock.Any()).
		Return(storage.ErrAlreadyExists)
	_, err = s.Produce(context.Background(), normalInput())
	require.ErrorIs(t, err, ErrAlreadyExists)

	// SaveEdition: любая иная -> Internal.
	me.EXPECT().
		NextSequence(gomock.Any(), "2025-12-24").
		Return(int64(1), nil)
	ma.EXPECT().
		UploadImage(gomock.Any(), gomock.Any()).
		Return(&storage.UploadResult{URL: "u", Key: "k"}, nil)
	me.EXPECT().
		SaveEdition(gomock.Any(), gomock.Any()).
		Return(errors.New("db down"))
	_, err = s.Produce(context.Background(), normalInput())
	require.ErrorIs(t, err, ErrInternal)
}

// Happy-path normal: номер из счётчика попадает в идентификатор, ключ
// загрузки и документ; timestamp, source.created_at и база срока хранения —
// одно и то же показание часов.
func TestService_Produce_OK_Normal(t *testing.T) {
	s, me, ma, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	in := normalInput()
	wantExpires := testNow.Add(30 * 24 * time.Hour)

	me.EXPECT().
		NextSequence(gomock.Any(), "2025-12-24").
		Return(int64(3), nil)

	ma.EXPECT().
		UploadImage(gomock.Any(), gomock.AssignableToTypeOf(storage.UploadInput{})).
		DoAndReturn(func(_ context.Context, up storage.UploadInput) (*storage.UploadResult, error) {
			require.Equal(t, []byte("png-bytes"), up.Image)
			require.Equal(t, "2025-12-24", up.Date)
			require.Equal(t, models.PostTypeNormal, up.PostType)
			require.Equal(t, int64(3), up.Sequence)
			require.Equal(t, testNow, up.CreatedAt)
			return &storage.UploadResult{
				URL:       "https://cdn.example.com/2025/12/24/normal-3.png",
				Key:       "2025/12/24/normal-3.png",
				ExpiresAt: wantExpires,
			}, nil
		})

	me.EXPECT().
		SaveEdition(gomock.Any(), gomock.AssignableToTypeOf(models.Edition{})).
		DoAndReturn(func(_ context.Context, e models.Edition) error {
			require.Equal(t, "2025-12-24-normal-3", e.ID)
			require.Equal(t, "2025-12-24", e.Date)
			require.Equal(t, testNow, e.Timestamp)
			require.Equal(t, models.PostTypeNormal, e.PostType)
			require.Equal(t, testEmojis(), e.Emojis)
			require.Nil(t, e.Essence)
			require.Equal(t, "https://cdn.example.com/2025/12/24/normal-3.png", e.Assets.ImageURL)
			require.Equal(t, "2025/12/24/normal-3.png", e.Assets.StoragePath)
			require.Equal(t, wantExpires, e.Assets.ExpiresAt)
			require.Equal(t, in.RSSSources, e.Source.RSSSources)
			require.Equal(t, "gpt-4o-mini", e.Source.Model)
			require.Equal(t, "openai", e.Source.Provider)
			require.Equal(t, testNow, e.Source.CreatedAt)
			return nil
		})

	got, err := s.Produce(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "2025-12-24-normal-3", got.ID)
	require.Equal(t, testNow, got.Timestamp)
	require.Equal(t, testNow, got.Source.CreatedAt)
}

// Happy-path essence: счётчик не трогается, идентификатор без номера,
// переданные эмодзи в выпуск не попадают.
func TestService_Produce_OK_Essence(t *testing.T) {
	s, me, ma, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	in := normalInput()
	in.PostType = models.PostTypeEssence
	in.Essence = testEssence()
	// Эмодзи остаются в запросе: продюсер присылает оба поля.

	// NextSequence не ожидается вовсе: лишний вызов провалит тест.
	ma.EXPECT().
		UploadImage(gomock.Any(), gomock.AssignableToTypeOf(storage.UploadInput{})).
		DoAndReturn(func(_ context.Context, up storage.UploadInput) (*storage.UploadResult, error) {
			require.Equal(t, models.PostTypeEssence, up.PostType)
			require.Equal(t, int64(1), up.Sequence)
			return &storage.UploadResult{
				URL: "https://cdn.example.com/2025/12/24/essence.png",
				Key: "2025/12/24/essence.png",
			}, nil
		})

	me.EXPECT().
		SaveEdition(gomock.Any(), gomock.AssignableToTypeOf(models.Edition{})).
		DoAndReturn(func(_ context.Context, e models.Edition) error {
			require.Equal(t, "2025-12-24-essence", e.ID)
			require.Equal(t, models.PostTypeEssence, e.PostType)
			require.Nil(t, e.Emojis)
			require.Equal(t, testEssence(), e.Essence)
			return nil
		})

	got, err := s.Produce(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "2025-12-24-essence", got.ID)
	require.Nil(t, got.Emojis)
}

// Dry-run: тот же сервис поверх dryrun-хранилищ с теми же часами
// возвращает ровно те значения, что дала бы реальная запись.
func TestService_Produce_DryRun_Deterministic(t *testing.T) {
	cfg := config.Config{
		RetentionDays: 30,
		S3: config.S3Config{
			Endpoint: "s3.example.com",
			Bucket:   "editions",
		},
	}
	s := &Service{
		editions: dryrun.NewEditionsStore(),
		assets:   dryrun.NewAssetsStore(&cfg),
		cfg:      cfg,
		now:      func() time.Time { return testNow },
	}

	got, err := s.Produce(context.Background(), normalInput())
	require.NoError(t, err)
	require.Equal(t, "2025-12-24-normal-1", got.ID)
	require.Equal(t, "2025/12/24/normal-1.png", got.Assets.StoragePath)
	require.Equal(t, "http://s3.example.com/editions/2025/12/24/normal-1.png", got.Assets.ImageURL)
	require.Equal(t, time.Date(2026, 1, 23, 10, 30, 0, 0, time.UTC), got.Assets.ExpiresAt)
	require.Equal(t, testNow, got.Timestamp)

	// Повторный прогон с теми же часами даёт тот же результат:
	// записей нет, счётчик снова выделяет 1.
	again, err := s.Produce(context.Background(), normalInput())
	require.NoError(t, err)
	require.Equal(t, got, again)
}
