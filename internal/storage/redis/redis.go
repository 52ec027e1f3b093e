// redis предоставляет реализацию storage.Storage на базе Redis.
// Вариант для разделяемого офлайн-хранилища: запись — hash по id,
// индекс свежести — ZSET со score = cached_at (мс с эпохи), то есть
// вторичный числовой индекс контракта ложится на ZSET один в один.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/storage"

	"github.com/redis/go-redis/v9"
)

type Storage struct {
	rdb    *redis.Client
	prefix string
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "sr:".
func New(ctx context.Context, redisURL, prefix string) (*Storage, error) {
	const op = "storage/redis/New"

	if prefix == "" {
		prefix = "sr:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{rdb: rdb, prefix: prefix}, nil
}

// Close закрывает клиент Redis.
func (s *Storage) Close() {
	_ = s.rdb.Close()
}

func (s *Storage) recordKey(id string) string { return s.prefix + "story:" + id }
func (s *Storage) indexKey() string           { return s.prefix + "recency" }

// SaveRecord сохраняет запись с upsert по id: hash с полями записи плюс
// членство в индексе свежести. Обе операции — в одном пайплайне, чтобы
// запись не существовала без индекса.
func (s *Storage) SaveRecord(ctx context.Context, rec models.CachedRecord) error {
	const op = "storage.redis.SaveRecord"

	kv := map[string]string{
		"title":      rec.Title,
		"payload":    string(rec.Payload),
		"cached_at":  strconv.FormatInt(rec.CachedAt.UTC().UnixMilli(), 10),
		"expires_at": strconv.FormatInt(rec.ExpiresAt.UTC().UnixMilli(), 10),
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, s.recordKey(rec.ID), kv)
	pipe.ZAdd(ctx, s.indexKey(), redis.Z{
		Score:  float64(rec.CachedAt.UTC().UnixMilli()),
		Member: rec.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RecordByID возвращает запись по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
// Истечение записи здесь не интерпретируется.
func (s *Storage) RecordByID(ctx context.Context, id string) (*models.CachedRecord, error) {
	const op = "storage.redis.RecordByID"

	m, err := s.rdb.HGetAll(ctx, s.recordKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(m) == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	rec, err := recordFromHash(id, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rec, nil
}

// DeleteRecord удаляет запись и её членство в индексе; отсутствие — не ошибка.
func (s *Storage) DeleteRecord(ctx context.Context, id string) error {
	const op = "storage.redis.DeleteRecord"

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, s.recordKey(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CountRecords возвращает общее число записей (живых и истёкших) —
// мощность индекса свежести, тела не читаются.
func (s *Storage) CountRecords(ctx context.Context) (int, error) {
	const op = "storage.redis.CountRecords"

	n, err := s.rdb.ZCard(ctx, s.indexKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(n), nil
}

// ListByRecency возвращает сводки неистёкших записей, новейшие впереди.
// Истёкшие удаляются как побочный эффект листинга (best-effort).
func (s *Storage) ListByRecency(ctx context.Context, now time.Time) ([]models.SavedSummary, error) {
	const op = "storage.redis.ListByRecency"

	ids, err := s.rdb.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cutoff := now.UTC().UnixMilli()

	var items []models.SavedSummary
	var expired []string

	for _, id := range ids {
		m, err := s.rdb.HGetAll(ctx, s.recordKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if len(m) == 0 {
			// Осиротевший член индекса (hash удалён извне) — подчистим.
			expired = append(expired, id)
			continue
		}

		expiresAt, err := strconv.ParseInt(m["expires_at"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: parse expires_at: %w", op, err)
		}

		if expiresAt < cutoff {
			expired = append(expired, id)
			continue
		}

		cachedAt, err := strconv.ParseInt(m["cached_at"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: parse cached_at: %w", op, err)
		}

		items = append(items, models.SavedSummary{
			ID:       id,
			Title:    m["title"],
			CachedAt: time.UnixMilli(cachedAt).UTC(),
		})
	}

	// Пакетная очистка истёкших best-effort: сбой не срывает листинг.
	if len(expired) > 0 {
		pipe := s.rdb.TxPipeline()
		for _, id := range expired {
			pipe.Del(ctx, s.recordKey(id))
			pipe.ZRem(ctx, s.indexKey(), id)
		}
		_, _ = pipe.Exec(ctx)
	}

	return items, nil
}

// OldestIDs возвращает идентификаторы n старейших по cached_at записей.
// Тай-брейк при равных score — лексикографический порядок ZSET.
func (s *Storage) OldestIDs(ctx context.Context, n int) ([]string, error) {
	const op = "storage.redis.OldestIDs"

	if n <= 0 {
		return nil, nil
	}

	ids, err := s.rdb.ZRange(ctx, s.indexKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}

// recordFromHash собирает models.CachedRecord из полей hash.
func recordFromHash(id string, m map[string]string) (*models.CachedRecord, error) {
	cachedAt, err := strconv.ParseInt(m["cached_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse cached_at: %w", err)
	}

	expiresAt, err := strconv.ParseInt(m["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse expires_at: %w", err)
	}

	return &models.CachedRecord{
		ID:        id,
		Title:     m["title"],
		Payload:   []byte(m["payload"]),
		CachedAt:  time.UnixMilli(cachedAt).UTC(),
		ExpiresAt: time.UnixMilli(expiresAt).UTC(),
	}, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Storage = (*Storage)(nil)
