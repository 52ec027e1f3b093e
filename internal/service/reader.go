package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/storage"
	"github.com/pribylovaa/story-reader/internal/upstream"
	"github.com/pribylovaa/story-reader/pkg/log"
)

// ReadKind — исход офлайн-осознанного чтения истории.
type ReadKind int

const (
	// KindOK — история получена (с сети или из кэша).
	KindOK ReadKind = iota
	// KindRedirect — история перемещена, читать по CanonicalID.
	KindRedirect
	// KindNotFound — истории нет у origin.
	KindNotFound
	// KindOfflineMissing — офлайн, а в кэше записи нет (или она истекла).
	// Отдельный исход: UI показывает «недоступно офлайн», не общую ошибку.
	KindOfflineMissing
)

// ReadResult — результат GetStoryForReading. Ожидаемые условия (отсутствие,
// истечение, перемещение) кодируются вариантом, а не ошибкой: ошибка
// возвращается только для настоящих сбоев (origin недоступен при онлайне).
type ReadResult struct {
	Kind ReadKind
	// Story — заполнено при KindOK.
	Story *models.Story
	// CanonicalID — заполнено при KindRedirect.
	CanonicalID string
	// FromCache — история отдана из офлайн-кэша.
	FromCache bool
}

// GetStoryForReading возвращает историю для чтения с учётом связности:
// онлайн — сетевое чтение со сквозной записью в офлайн-кэш, офлайн —
// чтение из кэша с ленивым истечением.
//
// Редиректы против кэша не разрешаются: определение каноничного id
// требует сети; офлайн по перемещённому id естественно даёт
// KindOfflineMissing, если исходный id не кэширован.
func (s *Service) GetStoryForReading(ctx context.Context, id string) (*ReadResult, error) {
	const op = "service.reader.GetStoryForReading"

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%s: empty id: %w", op, ErrInvalidArgument)
	}

	if s.network.Online() {
		return s.readOnline(ctx, id)
	}

	return s.readOffline(ctx, id)
}

// readOnline — сетевое чтение со сквозной записью в кэш.
func (s *Service) readOnline(ctx context.Context, id string) (*ReadResult, error) {
	const op = "service.reader.readOnline"

	lg := log.From(ctx)

	story, err := s.origin.StoryByID(ctx, id)
	if err != nil {
		var redirect *upstream.RedirectError
		switch {
		case errors.As(err, &redirect):
			// Кэш не трогаем: перемещение — не содержимое.
			lg.Info("story_redirect",
				slog.String("op", op),
				slog.String("id", id),
				slog.String("canonical_id", redirect.CanonicalID),
			)
			return &ReadResult{Kind: KindRedirect, CanonicalID: redirect.CanonicalID}, nil

		case errors.Is(err, upstream.ErrNotFound):
			lg.Info("story_not_found",
				slog.String("op", op),
				slog.String("id", id),
			)
			return &ReadResult{Kind: KindNotFound}, nil

		case errors.Is(err, upstream.ErrUnavailable):
			// Сбой сети — подсказка оракулу (верифицируется пробой в фоне,
			// не удлиняя текущий запрос), а вызывающему — неуспешный fetch.
			go s.network.ReportUnreachable(context.WithoutCancel(ctx))

			lg.Warn("story_fetch_failed",
				slog.String("op", op),
				slog.String("id", id),
				slog.String("err", err.Error()),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrUpstreamUnavailable)

		default:
			lg.Error("story_fetch_error",
				slog.String("op", op),
				slog.String("id", id),
				slog.String("err", err.Error()),
			)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	// Сквозная запись. Сбой кэширования не срывает чтение: история уже
	// получена, потеряна лишь возможность офлайн-доступа.
	rec := models.CachedRecord{
		ID:      story.ID,
		Title:   story.Title,
		Payload: story.Document,
	}
	s.policy.Stamp(&rec, time.Now())

	if err := s.storage.SaveRecord(ctx, rec); err != nil {
		lg.Warn("cache_write_failed",
			slog.String("op", op),
			slog.String("id", story.ID),
			slog.String("err", err.Error()),
		)
	} else {
		// Строго после успешного сохранения — и только здесь: лимит
		// никогда не применяется неявно на чтениях.
		s.policy.EnforceLimit(ctx, s.storage)
	}

	return &ReadResult{Kind: KindOK, Story: story}, nil
}

// readOffline — чтение из офлайн-кэша с ленивым истечением.
func (s *Service) readOffline(ctx context.Context, id string) (*ReadResult, error) {
	const op = "service.reader.readOffline"

	lg := log.From(ctx)

	rec, err := s.storage.RecordByID(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			// Сбой хранилища на чтении — «записи нет», не жёсткая ошибка.
			lg.Warn("cache_read_failed",
				slog.String("op", op),
				slog.String("id", id),
				slog.String("err", err.Error()),
			)
		}
		return &ReadResult{Kind: KindOfflineMissing}, nil
	}

	now := time.Now()
	if s.policy.Expired(rec, now) {
		// Ленивое истечение: логически запись удалена, физическое удаление —
		// немедленно и best-effort.
		if err := s.storage.DeleteRecord(ctx, rec.ID); err != nil {
			lg.Warn("expired_delete_failed",
				slog.String("op", op),
				slog.String("id", rec.ID),
				slog.String("err", err.Error()),
			)
		}
		return &ReadResult{Kind: KindOfflineMissing}, nil
	}

	return &ReadResult{
		Kind: KindOK,
		Story: &models.Story{
			ID:       rec.ID,
			Title:    rec.Title,
			Document: rec.Payload,
		},
		FromCache: true,
	}, nil
}
