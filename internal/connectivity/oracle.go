// connectivity реализует оракул достижимости origin: единственный булев
// сигнал «онлайн», которому доверяет остальная система.
//
// Сырые сигналы о связности несимметричны по надёжности:
//   - «стало достижимо» принимается на веру сразу (оптимизм в благоприятную
//     сторону — баннер офлайна не должен мигать на здоровой сети);
//   - «стало недостижимо» на веру не принимается: сначала активная проба,
//     состояние выставляется по её результату.
//
// Самостоятельно оракул перепроверяется только в состоянии offline
// (периодический таймер); из online проба не запускается — пока всё
// работает, нечего проверять.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pribylovaa/story-reader/internal/config"
	"github.com/pribylovaa/story-reader/pkg/log"
)

// Checker — проба достижимости origin. Реализуется upstream.Client.
type Checker interface {
	// Check возвращает HTTP-статус лёгкого запроса к origin по пути path.
	// Сетевой сбой (таймаут, обрыв, DNS) — ошибка.
	Check(ctx context.Context, path string) (int, error)
}

// Oracle — оракул достижимости.
//
// Инвариант конкурентности: перекрывающиеся пробы допустимы (избыточная
// проба идемпотентна), побеждает последняя запись состояния. Мьютекс
// защищает только состояние и список подписчиков, не сериализует пробы.
type Oracle struct {
	checker      Checker
	paths        []string
	probeTimeout time.Duration
	interval     time.Duration

	mu      sync.Mutex
	online  bool
	subs    map[int]chan bool
	nextSub int
}

// New создаёт оракул. Начальное состояние — online: до первого явного
// сигнала предполагается, что сеть работает.
func New(checker Checker, cfg config.ProbeConfig) *Oracle {
	return &Oracle{
		checker:      checker,
		paths:        cfg.Paths,
		probeTimeout: cfg.Timeout,
		interval:     cfg.Interval,
		online:       true,
		subs:         make(map[int]chan bool),
	}
}

// Online возвращает текущее состояние.
func (o *Oracle) Online() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.online
}

// Subscribe регистрирует подписчика на переходы состояния.
// В канал пишется только при смене значения (не на каждый тик пробы).
// Возвращённая функция снимает подписку и закрывает канал.
func (o *Oracle) Subscribe() (<-chan bool, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextSub
	o.nextSub++

	ch := make(chan bool, 1)
	o.subs[id] = ch

	cancel := func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if c, ok := o.subs[id]; ok {
			delete(o.subs, id)
			close(c)
		}
	}

	return ch, cancel
}

// ReportReachable — внешний сигнал «origin стал достижим».
// Принимается на веру без пробы.
func (o *Oracle) ReportReachable(ctx context.Context) {
	o.set(ctx, true)
}

// ReportUnreachable — внешний сигнал «origin стал недостижим».
// Сигналу не доверяем: запускаем пробу и выставляем её результат.
// Ложный сигнал недостижимости при живой сети не переводит оракул в offline.
func (o *Oracle) ReportUnreachable(ctx context.Context) {
	o.set(ctx, o.probe(ctx))
}

// Run запускает периодическую перепроверку. Пока состояние offline,
// каждый тик выполняется проба; в online тики пропускаются.
// Останавливается по ctx.
func (o *Oracle) Run(ctx context.Context) error {
	const op = "connectivity.Run"

	lg := log.From(ctx)
	lg.Info("oracle_start",
		slog.String("op", op),
		slog.Duration("interval", o.interval),
		slog.Duration("probe_timeout", o.probeTimeout),
		slog.Int("paths", len(o.paths)),
	)

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("oracle_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			if o.Online() {
				continue
			}
			o.set(ctx, o.probe(ctx))
		}
	}
}

// probe проверяет пути origin по порядку до первого достижимого.
//
// Критерий достижимости: запрос завершился со статусом < 500 — включая
// редиректы и 4xx. Проба доказывает, что сетевой путь до origin работает,
// а не что конкретный ресурс существует. Любой сетевой сбой (таймаут
// пробы, DNS, отказ соединения) — путь недостижим, пробуем следующий.
func (o *Oracle) probe(ctx context.Context) bool {
	const op = "connectivity.probe"

	lg := log.From(ctx)

	for _, path := range o.paths {
		probeCtx, cancel := context.WithTimeout(ctx, o.probeTimeout)
		status, err := o.checker.Check(probeCtx, path)
		cancel()

		if err != nil {
			lg.Debug("probe_path_failed",
				slog.String("op", op),
				slog.String("path", path),
				slog.String("err", err.Error()),
			)
			continue
		}

		if status < 500 {
			return true
		}

		lg.Debug("probe_path_server_error",
			slog.String("op", op),
			slog.String("path", path),
			slog.Int("status", status),
		)
	}

	return false
}

// set выставляет состояние; подписчики уведомляются только на переходе.
func (o *Oracle) set(ctx context.Context, online bool) {
	o.mu.Lock()

	if o.online == online {
		o.mu.Unlock()
		return
	}
	o.online = online

	// Отправка под мьютексом (неблокирующая), чтобы не гоняться с закрытием
	// канала в cancel-функции подписки. Медленный подписчик теряет
	// промежуточный переход, но буфер в 1 элемент всегда донесёт актуальное
	// значение: устаревшее вытесняется.
	for _, ch := range o.subs {
		select {
		case ch <- online:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- online:
			default:
			}
		}
	}
	o.mu.Unlock()

	log.From(ctx).Info("connectivity_transition",
		slog.String("op", "connectivity.set"),
		slog.Bool("online", online),
	)
}
