package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/pkg/log"
)

// ListSavedOffline возвращает список сохранённых офлайн историй,
// новейшие впереди. Листинг попутно вычищает истёкшие записи
// (единственное место пакетного ленивого истечения).
//
// Сбой хранилища деградирует до пустого списка: офлайн-список —
// вспомогательная витрина, ошибка не должна ронять UI.
func (s *Service) ListSavedOffline(ctx context.Context) []models.SavedSummary {
	const op = "service.saved.ListSavedOffline"

	lg := log.From(ctx)

	items, err := s.storage.ListByRecency(ctx, time.Now())
	if err != nil {
		lg.Warn("saved_list_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil
	}

	lg.Info("saved_list_ok",
		slog.String("op", op),
		slog.Int("items", len(items)),
	)

	return items
}

// RemoveSaved удаляет историю из офлайн-кэша по явному действию читателя.
// Отсутствие записи — не ошибка (удаление идемпотентно).
func (s *Service) RemoveSaved(ctx context.Context, id string) error {
	const op = "service.saved.RemoveSaved"

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%s: empty id: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.DeleteRecord(ctx, id); err != nil {
		log.From(ctx).Error("saved_remove_failed",
			slog.String("op", op),
			slog.String("id", id),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
