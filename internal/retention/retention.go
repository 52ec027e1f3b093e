// retention реализует политику удержания офлайн-кэша: TTL записи и
// верхнюю границу числа записей с вытеснением старейших вперёд.
package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/storage"
	"github.com/pribylovaa/story-reader/pkg/log"
)

// Policy — параметры удержания. Нулевое значение не валидно: политика
// строится из config.CacheConfig при сборке сервиса.
type Policy struct {
	// TTL записи: ExpiresAt = CachedAt + TTL.
	TTL time.Duration
	// MaxRecords — максимум записей; превышение устраняется EnforceLimit.
	MaxRecords int
}

// Stamp проставляет записи метки времени жизни: CachedAt = now,
// ExpiresAt = now + TTL. Вызывается на пути записи перед SaveRecord,
// чтобы проверка истечения при чтении не требовала знания политики.
func (p Policy) Stamp(rec *models.CachedRecord, now time.Time) {
	rec.CachedAt = now.UTC()
	rec.ExpiresAt = now.UTC().Add(p.TTL)
}

// Expired сообщает, истекла ли запись к моменту now.
// Каждый читающий путь обязан вызывать эту проверку сам: запись с
// прошедшим ExpiresAt логически удалена, даже если физически ещё лежит.
func (p Policy) Expired(rec *models.CachedRecord, now time.Time) bool {
	return rec.ExpiresAt.Before(now.UTC())
}

// EnforceLimit приводит хранилище к границе MaxRecords, вытесняя
// count-MaxRecords старейших по cached_at записей. Скан идёт по индексу
// свежести, тела документов не поднимаются.
//
// Вызывается явно после каждого успешного офлайн-сохранения и никогда —
// неявно на чтениях. Вытеснение best-effort: ошибки хранилища логируются
// и не возвращаются, сбой вытеснения не отменяет уже успешную запись.
// Возвращает число фактически удалённых записей.
func (p Policy) EnforceLimit(ctx context.Context, st storage.RecordStorage) int {
	const op = "retention.EnforceLimit"

	lg := log.From(ctx)

	total, err := st.CountRecords(ctx)
	if err != nil {
		lg.Warn("enforce_limit_count_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return 0
	}

	excess := total - p.MaxRecords
	if excess <= 0 {
		return 0
	}

	victims, err := st.OldestIDs(ctx, excess)
	if err != nil {
		lg.Warn("enforce_limit_scan_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return 0
	}

	evicted := 0
	for _, id := range victims {
		if err := st.DeleteRecord(ctx, id); err != nil {
			lg.Warn("enforce_limit_delete_error",
				slog.String("op", op),
				slog.String("id", id),
				slog.String("err", err.Error()),
			)
			continue
		}
		evicted++
	}

	if evicted > 0 {
		lg.Info("enforce_limit_evicted",
			slog.String("op", op),
			slog.Int("evicted", evicted),
			slog.Int("total_before", total),
			slog.Int("max_records", p.MaxRecords),
		)
	}

	return evicted
}
