package service

import (
	"context"
	"fmt"

	"github.com/pareeksourabh/today-in-emojis-cloud/pkg/log"
)

// Health проверяет доступность обоих хранилищ.
// Первая недоступность останавливает проверку и возвращает ErrInternal.
func (s *Service) Health(ctx context.Context) error {
	const op = "service/editions/Health"

	lg := log.From(ctx).With("op", op)

	if err := s.editions.Ping(ctx); err != nil {
		lg.Error("editions storage ping failed", "err", err)
		return fmt.Errorf("%s: editions: %w", op, ErrInternal)
	}

	if err := s.assets.Ping(ctx); err != nil {
		lg.Error("assets storage ping failed", "err", err)
		return fmt.Errorf("%s: assets: %w", op, ErrInternal)
	}

	lg.Info("storages healthy")

	return nil
}
