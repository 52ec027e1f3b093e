package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/storage"
)

// Интеграционные тесты PostgreSQL-реализации хранилища:
// — поднимают реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// — применяют миграции из ./migrations;
// — проверяют:
//    SaveRecord: insert и upsert по id (полная замена содержимого и меток);
//    RecordByID: round-trip и ErrNotFound;
//    DeleteRecord: идемпотентность;
//    ListByRecency: порядок «новейшие впереди» и физическую очистку истёкших;
//    OldestIDs: порядок вытеснения, тай-брейк по id.

// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — определяет корень репозитория относительно текущего файла тестов.
// Используется для поиска SQL-миграций в каталоге ./migrations независимо от рабочего каталога.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает содержимое SQL-миграции из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	root := repoRootFromThisFile()
	path := filepath.Join(root, "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres — поднимает PostgreSQL через testcontainers-go, применяет
// миграции и возвращает инициализированное хранилище с функцией очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	// Применяем миграции.
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, readMigration(t, "1_init_cached_stories.up.sql"))
	require.NoError(t, err)
	pool.Close()

	st, err := New(ctx, dsn)
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

// TestSaveRecord_InsertAndUpsert — вставка, round-trip и полная замена при
// повторном сохранении того же id.
func TestSaveRecord_InsertAndUpsert(t *testing.T) {
	st, cleanup := startPostgres(t)
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

	// Upsert: содержимое и метки полностью заменяются, дубликата нет.
	updated := testRecord("quantum-moss", base.Add(time.Minute), 2*time.Hour)
	updated.Title = "Updated"
	updated.Payload = json.RawMessage(`{"v":2}`)
	require.NoError(t, st.SaveRecord(ctx, updated))

	n, err := st.CountRecords(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err = st.RecordByID(ctx, "quantum-moss")
	require.NoError(t, err)
	require.Equal(t, "Updated", got.Title)
	require.JSONEq(t, `{"v":2}`, string(got.Payload))
	require.True(t, updated.CachedAt.Equal(got.CachedAt))
}

// TestRecordByID_NotFound — отсутствующая запись даёт storage.ErrNotFound.
func TestRecordByID_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.RecordByID(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestDeleteRecord_Idempotent — повторное удаление — не ошибка.
func TestDeleteRecord_Idempotent(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, st.SaveRecord(ctx, testRecord("s1", time.Now(), time.Hour)))

	require.NoError(t, st.DeleteRecord(ctx, "s1"))
	require.NoError(t, st.DeleteRecord(ctx, "s1"))

	_, err := st.RecordByID(ctx, "s1")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestListByRecency_OrderAndPurge — порядок «новейшие впереди», истёкшие
// не попадают в выдачу и физически удаляются.
func TestListByRecency_OrderAndPurge(t *testing.T) {
	st, cleanup := startPostgres(t)
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

	n, err := st.CountRecords(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

// TestOldestIDs_OrderAndTieBreak — старейшие вперёд, тай-брейк по id.
func TestOldestIDs_OrderAndTieBreak(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, st.SaveRecord(ctx, testRecord("b-same", now.Add(-time.Minute), time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, testRecord("a-same", now.Add(-time.Minute), time.Hour)))
	require.NoError(t, st.SaveRecord(ctx, testRecord("newest", now, time.Hour)))

	ids, err := st.OldestIDs(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"a-same", "b-same"}, ids)

	ids, err = st.OldestIDs(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, ids)
}
