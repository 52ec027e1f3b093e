package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/storage"
)

// Тесты SQLite-хранилища на реальном файле БД (t.TempDir, без моков).
//
// Покрытие:
//  - upsert: повторное сохранение заменяет payload и сбрасывает метки;
//  - чтение/удаление/подсчёт;
//  - ListByRecency: порядок «новейшие впереди», физическая очистка истёкших;
//  - OldestIDs: порядок вытеснения и тай-брейк по id.

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	ctx := context.Background()
	st, err := New(ctx, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(st.Close)

	return st
}

func record(id string, cachedAt time.Time, ttl time.Duration) models.CachedRecord {
	return models.CachedRecord{
		ID:        id,
		Title:     "Title " + id,
		Payload:   json.RawMessage(`{"id":"` + id + `"}`),
		CachedAt:  cachedAt.UTC(),
		ExpiresAt: cachedAt.UTC().Add(ttl),
	}
}

// TestNew_EmptyPath — пустой путь к файлу БД отклоняется.
func TestNew_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), "   ")
	require.Error(t, err)
}

// TestSaveRecord_Roundtrip — запись читается обратно с точностью до мс.
func TestSaveRecord_Roundtrip(t *testing.T) {
	t.Parallel()

	st := newTestStorage(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := record("quantum-moss", now, time.Hour)

	require.NoError(t, st.SaveRecord(ctx, rec))

	got, err := st.RecordByID(ctx, "quantum-moss")
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, rec.Title, got.Title)
	require.JSONEq(t, string(rec.Payload), string(got.Payload))
	require.True(t, rec.CachedAt.Equal(got.CachedAt))
	require.True(t, rec.ExpiresAt.Equal(got.ExpiresAt))
}

// TestSaveRecord_UpsertReplaces — повторное сохранение того же id заменяет
// содержимое и метки, не плодя дубликатов.
func TestSaveRecord_UpsertReplaces(t *testing.T) {
	t.Parallel()

	st := newTestStorage(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)

	first := record("s1", base, time.Hour)
	require.NoError(t, st.SaveRecord(ctx, first))

	second := record("s1", base.Add(time.Minute), 2*time.Hour)
	second.Title = "Updated"
	second.Payload = json.RawMessage(`{"v":2}`)
	require.NoError(t, st.SaveRecord(ctx, second))

	n, err := st.CountRecords(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := st.RecordByID(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "Updated", got.Title)
	require.JSONEq(t, `{"v":2}`, string(got.Payload))
	require.True(t, second.CachedAt.Equal(got.CachedAt))
	require.True(t, second.ExpiresAt.Equal(got.ExpiresAt))
}

// TestRecordByID_NotFound — отсутствующая запись даёт storage.ErrNotFound.
func TestRecordByID_NotFound(t *testing.T) {
	t.Parallel()

	st := newTestStorage(t)

	_, err := st.RecordByID(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestRecordByID_ReturnsExpired — хранилище не интерпретирует истечение:
// истёкшая запись возвращается как есть.
func TestRecordByID_ReturnsExpired(t *testing.T) {
	t.Parallel()

	st := newTestStorage(t)
	ctx := context.Background()

	stale := record("stale", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, st.SaveRecord(ctx, stale))

	got, err := st.RecordByID(ctx, "stale")
	require.NoError(t, err)
	require.True(t, got.ExpiresAt.Before(time.Now().UTC()))
}

// TestDeleteRecord_Idempotent — удаление отсутствующей записи — не ошибка.
func TestDeleteRecord_Idempotent(t *testing.T) {
	t.Parallel()

	st := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.SaveRecord(ctx, record("s1", time.Now(), time.Hour)))
	require.NoError(t, st.DeleteRecord(ctx, "s1"))
	require.NoError(t, st.DeleteRecord(ctx, "s1"))

	_, err := st.RecordByID(ctx, "s1")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestCountRecords_IncludesExpired — подсчёт не фильтрует истёкшие.
func TestCountRecords_IncludesExpired(t *testing.T) {
	t.Parallel()

	st := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.SaveRecord(ctx, record("live", time.Now(), time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, record("stale", time.Now().Add(-2*time.Hour), time.Hour)))

	n, err := st.CountRecords(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

// TestListByRecency_OrderAndPurge — новейшие впереди; истёкшие не попадают
// в выдачу и физически вычищаются побочным эффектом.
func TestListByRecency_OrderAndPurge(t *testing.T) {
	t.Parallel()

	st := newTestStorage(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, st.SaveRecord(ctx, record("old", now.Add(-2*time.Minute), time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, record("new", now, time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, record("mid", now.Add(-time.Minute), time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, record("stale", now.Add(-2*time.Hour), time.Hour)))

	items, err := st.ListByRecency(ctx, now)
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	require.Equal(t, []string{"new", "mid", "old"}, ids)

	// Истёкшая запись физически удалена листингом.
	n, err := st.CountRecords(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = st.RecordByID(ctx, "stale")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestListByRecency_Empty — пустое хранилище даёт пустой список без ошибки.
func TestListByRecency_Empty(t *testing.T) {
	t.Parallel()

	st := newTestStorage(t)

	items, err := st.ListByRecency(context.Background(), time.Now())
	require.NoError(t, err)
	require.Empty(t, items)
}

// TestOldestIDs_Order — старейшие вперёд; при равных cached_at — по id.
func TestOldestIDs_Order(t *testing.T) {
	t.Parallel()

	st := newTestStorage(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, st.SaveRecord(ctx, record("b-same", now.Add(-time.Minute), time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, record("a-same", now.Add(-time.Minute), time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, record("newest", now, time.Hour)))

	ids, err := st.OldestIDs(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"a-same", "b-same"}, ids)

	// n больше числа записей — возвращается всё без ошибки.
	ids, err = st.OldestIDs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ids, 3)

	// n <= 0 — пустой результат.
	ids, err = st.OldestIDs(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, ids)
}
