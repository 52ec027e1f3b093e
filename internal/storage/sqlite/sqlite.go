// sqlite предоставляет реализацию storage.Storage на базе SQLite
// (modernc.org/sqlite, чистый Go, без cgo). Движок по умолчанию:
// однофайловая БД, переживающая перезапуски, — естественный выбор
// для локального офлайн-кэша.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pribylovaa/story-reader/internal/storage"

	_ "modernc.org/sqlite"
)

// schema — таблица записей кэша и индекс по cached_at (индекс свежести:
// листинг и вытеснение ходят по нему, не поднимая payload).
const schema = `
CREATE TABLE IF NOT EXISTS cached_stories (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	payload    BLOB NOT NULL,
	cached_at  INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cached_stories_cached_at ON cached_stories (cached_at);
`

// Storage реализует storage.Storage поверх SQLite.
type Storage struct {
	db *sql.DB
}

// New открывает (при необходимости создаёт) файл БД и применяет схему.
func New(ctx context.Context, path string) (*Storage, error) {
	const op = "storage/sqlite/New"

	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%s: empty db path", op)
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: apply schema: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Close закрывает соединение с БД.
// Должен вызываться при остановке приложения.
func (s *Storage) Close() {
	_ = s.db.Close()
}

// toMillis/fromMillis — метки времени хранятся как мс с эпохи (UTC).
func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Storage = (*Storage)(nil)
