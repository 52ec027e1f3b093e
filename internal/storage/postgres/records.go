package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/storage"

	"github.com/jackc/pgx/v5"
)

// SaveRecord сохраняет запись с upsert по id.
//
// Политика обновления: повторное сохранение полностью заменяет
// title/payload и сбрасывает cached_at/expires_at — кэш хранит снимок
// последнего успешного чтения.
func (s *Storage) SaveRecord(ctx context.Context, rec models.CachedRecord) error {
	const op = "storage.postgres.SaveRecord"

	_, err := s.db.Exec(ctx, `
	INSERT INTO cached_stories (id, title, payload, cached_at, expires_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET
	title = EXCLUDED.title,
	payload = EXCLUDED.payload,
	cached_at = EXCLUDED.cached_at,
	expires_at = EXCLUDED.expires_at
	`, rec.ID, rec.Title, []byte(rec.Payload), rec.CachedAt.UTC().UnixMilli(), rec.ExpiresAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RecordByID возвращает запись по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
// Истечение записи здесь не интерпретируется.
func (s *Storage) RecordByID(ctx context.Context, id string) (*models.CachedRecord, error) {
	const op = "storage.postgres.RecordByID"

	var rec models.CachedRecord
	var cachedAt, expiresAt int64

	err := s.db.QueryRow(ctx, `
	SELECT id, title, payload, cached_at, expires_at
	FROM cached_stories
	WHERE id = $1
	`, id).Scan(&rec.ID, &rec.Title, &rec.Payload, &cachedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec.CachedAt = time.UnixMilli(cachedAt).UTC()
	rec.ExpiresAt = time.UnixMilli(expiresAt).UTC()

	return &rec, nil
}

// DeleteRecord удаляет запись по id; отсутствие записи — не ошибка.
func (s *Storage) DeleteRecord(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteRecord"

	if _, err := s.db.Exec(ctx, `DELETE FROM cached_stories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CountRecords возвращает общее число записей (живых и истёкших).
func (s *Storage) CountRecords(ctx context.Context) (int, error) {
	const op = "storage.postgres.CountRecords"

	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM cached_stories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// ListByRecency возвращает сводки неистёкших записей, новейшие впереди.
// Сортировка фиксирована: cached_at DESC, id DESC.
// Истёкшие записи удаляются пакетно как побочный эффект листинга (best-effort).
func (s *Storage) ListByRecency(ctx context.Context, now time.Time) ([]models.SavedSummary, error) {
	const op = "storage.postgres.ListByRecency"

	cutoff := now.UTC().UnixMilli()

	// Очистка best-effort: её сбой не срывает листинг, фильтр ниже
	// всё равно не пропустит истёкшие наружу.
	_, _ = s.db.Exec(ctx, `DELETE FROM cached_stories WHERE expires_at < $1`, cutoff)

	rows, err := s.db.Query(ctx, `
	SELECT id, title, cached_at
	FROM cached_stories
	WHERE expires_at >= $1
	ORDER BY cached_at DESC, id DESC
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.SavedSummary
	for rows.Next() {
		var it models.SavedSummary
		var cachedAt int64
		if scanErr := rows.Scan(&it.ID, &it.Title, &cachedAt); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		it.CachedAt = time.UnixMilli(cachedAt).UTC()
		items = append(items, it)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}

// OldestIDs возвращает идентификаторы n старейших по cached_at записей.
// Тай-брейк при равных cached_at — по id.
func (s *Storage) OldestIDs(ctx context.Context, n int) ([]string, error) {
	const op = "storage.postgres.OldestIDs"

	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, `
	SELECT id
	FROM cached_stories
	ORDER BY cached_at ASC, id ASC
	LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}
		ids = append(ids, id)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return ids, nil
}
