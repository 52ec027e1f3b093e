// storage определяет контракты доступа к офлайн-хранилищу story-reader.
package storage

//go:generate mockgen -source=storage.go -destination=../../mocks/mock_storage.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/story-reader/internal/models"
)

var (
	// ErrNotFound — запись отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable — движок хранилища недоступен (повреждённое окружение,
	// закрытое соединение). Чтения маппятся вызывающим слоем в «нет записи»,
	// записи — в потерянную возможность кэширования, не в фатальную ошибку.
	ErrUnavailable = errors.New("storage unavailable")
)

// RecordStorage описывает операции над сущностью models.CachedRecord.
//
// Хранилище — «глупое»: интерпретация ExpiresAt (ленивое истечение) —
// ответственность вызывающего слоя, кроме ListByRecency, где пакетная
// очистка истёкших применяется как побочный эффект листинга.
type RecordStorage interface {
	// SaveRecord сохраняет запись (upsert по ID): повторное сохранение
	// заменяет payload и сбрасывает cached_at/expires_at.
	SaveRecord(ctx context.Context, rec models.CachedRecord) error
	// RecordByID возвращает запись по идентификатору без проверки истечения.
	// Если запись не найдена — ErrNotFound.
	RecordByID(ctx context.Context, id string) (*models.CachedRecord, error)
	// DeleteRecord удаляет запись; отсутствие записи — не ошибка.
	DeleteRecord(ctx context.Context, id string) error
	// CountRecords возвращает общее число записей (живых и истёкших),
	// не загружая тел документов.
	CountRecords(ctx context.Context) (int, error)
	// ListByRecency возвращает сводки всех неистёкших записей, новейшие
	// впереди, и физически удаляет истёкшие как побочный эффект.
	ListByRecency(ctx context.Context, now time.Time) ([]models.SavedSummary, error)
	// OldestIDs возвращает идентификаторы n старейших по cached_at записей
	// (для вытеснения; тела документов не загружаются). Тай-брейк при равных
	// cached_at — детерминированный порядок движка, не гарантируемый контрактом.
	OldestIDs(ctx context.Context, n int) ([]string, error)
}

// Storage задаёт контракт доступа к хранилищу для story-reader.
type Storage interface {
	RecordStorage
	Close()
}
