package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/storage"
)

// Интеграционные тесты Redis-реализации хранилища:
// — поднимают реальный Redis через testcontainers-go (образ redis:7-alpine);
// — проверяют:
//    SaveRecord: hash + членство в индексе свежести одним пайплайном, upsert;
//    RecordByID: round-trip и ErrNotFound;
//    DeleteRecord: идемпотентность, снятие с индекса;
//    ListByRecency: порядок по score, очистку истёкших и осиротевших членов;
//    OldestIDs: порядок вытеснения.

// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/redis -v -race -count=1

// startRedis — поднимает Redis через testcontainers-go и возвращает
// инициализированное хранилище с функцией очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startRedis(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")
	url := fmt.Sprintf("redis://%s:%s/0", host, port.Port())

	st, err := New(ctx, url, "test:")
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(ctx)
	}

	return st, cleanup
}

func testRecord(id string, cachedAt time.Time, ttl time.Duration) models.CachedRecord {
	return models.CachedRecord{
		ID:        id,
		Title:     "Title " + id,
		Payload:   json.RawMessage(`{"id":"` + id + `"}`),
		CachedAt:  cachedAt.UTC(),
		ExpiresAt: cachedAt.UTC().Add(ttl),
	}
}

// TestSaveRecord_RoundtripAndUpsert — round-trip записи и полная замена
// при повторном сохранении.
func TestSaveRecord_RoundtripAndUpsert(t *testing.T) {
	st, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	rec := testRecord("quantum-moss", base, time.Hour)
	require.NoError(t, st.SaveRecord(ctx, rec))

	got, err := st.RecordByID(ctx, "quantum-moss")
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, rec.Title, got.Title)
	require.JSONEq(t, string(rec.Payload), string(got.Payload))
	require.True(t, rec.CachedAt.Equal(got.CachedAt))
	require.True(t, rec.ExpiresAt.Equal(got.ExpiresAt))

	updated := testRecord("quantum-moss", base.Add(time.Minute), 2*time.Hour)
	updated.Title = "Updated"
	require.NoError(t, st.SaveRecord(ctx, updated))

	n, err := st.CountRecords(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err = st.RecordByID(ctx, "quantum-moss")
	require.NoError(t, err)
	require.Equal(t, "Updated", got.Title)
	require.True(t, updated.CachedAt.Equal(got.CachedAt))
}

// TestRecordByID_NotFound — отсутствующий hash даёт storage.ErrNotFound.
func TestRecordByID_NotFound(t *testing.T) {
	st, cleanup := startRedis(t)
	defer cleanup()

	_, err := st.RecordByID(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestDeleteRecord_RemovesFromIndex — удаление снимает запись с индекса
// свежести и идемпотентно.
func TestDeleteRecord_RemovesFromIndex(t *testing.T) {
	st, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, st.SaveRecord(ctx, testRecord("s1", time.Now(), time.Hour)))

	require.NoError(t, st.DeleteRecord(ctx, "s1"))
	require.NoError(t, st.DeleteRecord(ctx, "s1"))

	n, err := st.CountRecords(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = st.RecordByID(ctx, "s1")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestListByRecency_OrderAndPurge — порядок по score (новейшие впереди),
// истёкшие вычищаются из hash и индекса.
func TestListByRecency_OrderAndPurge(t *testing.T) {
	st, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, st.SaveRecord(ctx, testRecord("old", now.Add(-2*time.Minute), time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, testRecord("new", now, time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, testRecord("stale", now.Add(-2*time.Hour), time.Hour)))

	items, err := st.ListByRecency(ctx, now)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "new", items[0].ID)
	require.Equal(t, "old", items[1].ID)

	// Истёкшая запись вычищена и из hash, и из индекса.
	n, err := st.CountRecords(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = st.RecordByID(ctx, "stale")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestOldestIDs_Order — старейшие по score вперёд.
func TestOldestIDs_Order(t *testing.T) {
	st, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, st.SaveRecord(ctx, testRecord("oldest", now.Add(-2*time.Minute), time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, testRecord("middle", now.Add(-time.Minute), time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, testRecord("newest", now, time.Hour)))

	ids, err := st.OldestIDs(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"oldest", "middle"}, ids)

	ids, err = st.OldestIDs(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, ids)
}
