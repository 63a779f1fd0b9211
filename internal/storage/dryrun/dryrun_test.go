package dryrun

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		Project:       "today-in-emojis-test",
		DryRun:        true,
		RetentionDays: 30,
		S3: config.S3Config{
			Endpoint: "s3.example.com",
			Bucket:   "editions",
		},
	}
}

func TestEditionsStore_Writes(t *testing.T) {
	s := NewEditionsStore()
	ctx := context.Background()

	require.NoError(t, s.SaveEdition(ctx, models.Edition{ID: "2025-12-24-normal-1"}))

	// Запись пропущена: последующее чтение ничего не находит.
	_, err := s.EditionByID(ctx, "2025-12-24-normal-1")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEditionsStore_EmptyQueries(t *testing.T) {
	s := NewEditionsStore()
	ctx := context.Background()

	byDate, err := s.EditionsByDate(ctx, "2025-12-24")
	require.NoError(t, err)
	require.Empty(t, byDate)

	recent, err := s.RecentEditions(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, recent)

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close(ctx))
}

func TestEditionsStore_NextSequence(t *testing.T) {
	s := NewEditionsStore()

	seq, err := s.NextSequence(context.Background(), "2025-12-24")
	require.NoError(t, err)
	require.EqualValues(t, 1, seq)
}

func TestAssetsStore_UploadComputesRealValues(t *testing.T) {
	s := NewAssetsStore(testConfig())
	createdAt := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)

	res, err := s.UploadImage(context.Background(), storage.UploadInput{
		Image:     []byte("png-bytes"),
		Date:      "2025-12-24",
		PostType:  models.PostTypeNormal,
		Sequence:  1,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)

	// Ключ и срок хранения совпадают с результатом боевого адаптера.
	require.Equal(t, storage.ObjectKey("2025-12-24", models.PostTypeNormal, 1), res.Key)
	require.Equal(t, storage.ExpiresAt(createdAt, 30), res.ExpiresAt)
	require.Equal(t, time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC), res.ExpiresAt)
	require.Equal(t, "http://s3.example.com/editions/2025/12/24/normal-1.png", res.URL)
}

func TestAssetsStore_PublicBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.S3.PublicBaseURL = "https://cdn.example.com/"
	s := NewAssetsStore(cfg)

	res, err := s.UploadImage(context.Background(), storage.UploadInput{
		Image:     []byte("png-bytes"),
		Date:      "2025-12-24",
		PostType:  models.PostTypeEssence,
		Sequence:  1,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/2025/12/24/essence.png", res.URL)
}

func TestAssetsStore_EmptyImage(t *testing.T) {
	s := NewAssetsStore(testConfig())

	_, err := s.UploadImage(context.Background(), storage.UploadInput{
		Date:     "2025-12-24",
		PostType: models.PostTypeNormal,
		Sequence: 1,
	})
	require.Error(t, err)
	require.False(t, errors.Is(err, storage.ErrNotFound))
}
