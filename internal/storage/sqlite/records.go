package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/storage"
)

// SaveRecord сохраняет запись с upsert по id.
//
// Политика обновления: повторное сохранение того же id полностью заменяет
// title/payload и сбрасывает cached_at/expires_at — кэш хранит снимок
// последнего успешного чтения, не историю.
func (s *Storage) SaveRecord(ctx context.Context, rec models.CachedRecord) error {
	const op = "storage.sqlite.SaveRecord"

	_, err := s.db.ExecContext(ctx, `
	INSERT INTO cached_stories (id, title, payload, cached_at, expires_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET
	title = excluded.title,
	payload = excluded.payload,
	cached_at = excluded.cached_at,
	expires_at = excluded.expires_at
	`, rec.ID, rec.Title, []byte(rec.Payload), toMillis(rec.CachedAt), toMillis(rec.ExpiresAt))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RecordByID возвращает запись по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
// Истечение записи здесь не интерпретируется — это ответственность вызывающего.
func (s *Storage) RecordByID(ctx context.Context, id string) (*models.CachedRecord, error) {
	const op = "storage.sqlite.RecordByID"

	var rec models.CachedRecord
	var cachedAt, expiresAt int64

	err := s.db.QueryRowContext(ctx, `
	SELECT id, title, payload, cached_at, expires_at
	FROM cached_stories
	WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Title, &rec.Payload, &cachedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec.CachedAt = fromMillis(cachedAt)
	rec.ExpiresAt = fromMillis(expiresAt)

	return &rec, nil
}

// DeleteRecord удаляет запись по id; отсутствие записи — не ошибка.
func (s *Storage) DeleteRecord(ctx context.Context, id string) error {
	const op = "storage.sqlite.DeleteRecord"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM cached_stories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CountRecords возвращает общее число записей (живых и истёкших).
func (s *Storage) CountRecords(ctx context.Context) (int, error) {
	const op = "storage.sqlite.CountRecords"

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cached_stories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// ListByRecency возвращает сводки неистёкших записей, новейшие впереди.
// Истёкшие записи физически удаляются как побочный эффект листинга —
// единственное место пакетного применения ленивого истечения.
func (s *Storage) ListByRecency(ctx context.Context, now time.Time) ([]models.SavedSummary, error) {
	const op = "storage.sqlite.ListByRecency"

	cutoff := toMillis(now)

	// Пакетная очистка истёкших — единственное место, где ленивое истечение
	// применяется массово. Очистка best-effort: её сбой не срывает листинг,
	// фильтр по expires_at ниже всё равно не пропустит истёкшие наружу.
	_, _ = s.db.ExecContext(ctx, `DELETE FROM cached_stories WHERE expires_at < ?`, cutoff)

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, title, cached_at
	FROM cached_stories
	WHERE expires_at >= ?
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

		it.CachedAt = fromMillis(cachedAt)
		items = append(items, it)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}

// OldestIDs возвращает идентификаторы n старейших по cached_at записей.
// Тай-брейк при равных cached_at — по id (детерминированный, но не
// контрактный порядок). Тела документов не поднимаются.
func (s *Storage) OldestIDs(ctx context.Context, n int) ([]string, error) {
	const op = "storage.sqlite.OldestIDs"

	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT id
	FROM cached_stories
	ORDER BY cached_at ASC, id ASC
	LIMIT ?
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
