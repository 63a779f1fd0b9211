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

// EditionByID — получить выпуск по идентификатору.
//
// Валидация:
//   - id не должен быть пустым.
//
// Поведение/ошибки:
//   - ErrNotFound — если выпуск не найден;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) EditionByID(ctx context.Context, id string) (*models.Edition, error) {
	const op = "service/editions/EditionByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "edition_id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.editions.EditionByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("edition not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on EditionByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// EditionsByDate — все выпуски за дату по возрастанию времени создания.
//
// Валидация:
//   - date в формате YYYY-MM-DD.
//
// Поведение/ошибки:
//   - пустой список — валидный результат (за дату ничего не выходило);
//   - ErrInternal — ошибки стораджа.
func (s *Service) EditionsByDate(ctx context.Context, date string) ([]models.Edition, error) {
	const op = "service/editions/EditionsByDate"

	date = strings.TrimSpace(date)
	lg := log.From(ctx).With("op", op, "date", date)

	if _, err := time.Parse(models.DateLayout, date); err != nil {
		lg.Warn("invalid argument: bad date")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.editions.EditionsByDate(ctx, date)
	if err != nil {
		lg.Error("storage error on EditionsByDate", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}

// RecentEditions — выпуски за последние days календарных дней,
// свежие раньше.
//
// Валидация:
//   - days > 0.
//
// Поведение/ошибки:
//   - ErrInternal — ошибки стораджа.
func (s *Service) RecentEditions(ctx context.Context, days int) ([]models.Edition, error) {
	const op = "service/editions/RecentEditions"

	lg := log.From(ctx).With("op", op, "days", days)

	if days <= 0 {
		lg.Warn("invalid argument: non-positive days")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.editions.RecentEditions(ctx, days)
	if err != nil {
		lg.Error("storage error on RecentEditions", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}
