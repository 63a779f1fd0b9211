package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pareeksourabh/today-in-emojis-cloud/pkg/log"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage"
)

// ProduceInput — запрос на производство выпуска.
// Правила:
//   - Date в формате YYYY-MM-DD;
//   - для normal обязателен непустой Emojis, для essence — Essence;
//     поле другого типа, если оно передано, в выпуск не попадает;
//   - Image — готовый PNG, непустой;
//   - RSSSources/Model/Provider переносятся в метаданные как есть.
type ProduceInput struct {
	Date       string
	PostType   models.PostType
	Emojis     []models.EmojiItem
	Essence    *models.Essence
	Image      []byte
	RSSSources []string
	Model      string
	Provider   string
}

// Produce — бизнес-операция производства выпуска.
//
// Шаги:
//  1. валидация запроса;
//  2. фиксация единого показания часов: оно становится timestamp выпуска,
//     created_at источника и базой срока хранения изображения;
//  3. выделение порядкового номера (только для normal);
//  4. вычисление идентификатора выпуска;
//  5. загрузка изображения по детерминированному ключу;
//  6. сборка документа и запись с отклонением дубликатов.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — неверная дата/тип/состав запроса;
//   - ErrAlreadyExists — выпуск с таким идентификатором уже записан
//     (для essence это означает повтор за день);
//   - ErrInternal — прочие ошибки хранилищ.
func (s *Service) Produce(ctx context.Context, in ProduceInput) (*models.Edition, error) {
	const op = "service/editions/Produce"

	in.Date = strings.TrimSpace(in.Date)
	lg := log.From(ctx).With("op", op, "date", in.Date, "post_type", string(in.PostType))

	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		lg.Warn("invalid argument: bad date")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !in.PostType.Valid() {
		lg.Warn("invalid argument: unknown post_type")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.PostType == models.PostTypeNormal && len(in.Emojis) == 0 {
		lg.Warn("invalid argument: normal edition without emojis")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.PostType == models.PostTypeEssence && in.Essence == nil {
		lg.Warn("invalid argument: essence edition without essence")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if len(in.Image) == 0 {
		lg.Warn("invalid argument: empty image")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	// Единое показание часов на весь выпуск.
	now := s.now().UTC().Truncate(time.Millisecond)

	seq := int64(1)
	if in.PostType == models.PostTypeNormal {
		var err error
		seq, err = s.editions.NextSequence(ctx, in.Date)
		if err != nil {
			lg.Error("storage error on NextSequence", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	id := models.EditionID(in.Date, in.PostType, seq)
	lg = lg.With("edition_id", id)

	upload, err := s.assets.UploadImage(ctx, storage.UploadInput{
		Image:     in.Image,
		Date:      in.Date,
		PostType:  in.PostType,
		Sequence:  seq,
		CreatedAt: now,
	})
	if err != nil {
		lg.Error("assets error on UploadImage", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	edition := models.Edition{
		ID:        id,
		Date:      in.Date,
		Timestamp: now,
		PostType:  in.PostType,
		Assets: models.Assets{
			ImageURL:    upload.URL,
			StoragePath: upload.Key,
			ExpiresAt:   upload.ExpiresAt,
		},
		Source: models.SourceMeta{
			RSSSources: in.RSSSources,
			Model:      in.Model,
			Provider:   in.Provider,
			CreatedAt:  now,
		},
	}

	// Выпуск несёт ровно одно содержимое, выбранное по типу.
	switch in.PostType {
	case models.PostTypeNormal:
		edition.Emojis = in.Emojis
	case models.PostTypeEssence:
		edition.Essence = in.Essence
	}

	// Последняя проверка инвариантов перед записью: сломанный документ
	// в хранилище хуже отклонённого запроса.
	if err := edition.Validate(); err != nil {
		lg.Error("assembled edition failed validation", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.editions.SaveEdition(ctx, edition); err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			lg.Warn("edition already exists")
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		default:
			// Изображение уже загружено: фиксируем осиротевший ключ.
			lg.Error("storage error on SaveEdition after upload", "err", err, "orphaned_key", upload.Key)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("edition produced",
		"image_url", upload.URL,
		"storage_path", upload.Key,
		"expires_at", upload.ExpiresAt,
	)

	return &edition, nil
}
