// service содержит бизнес-логику story-reader: офлайн-осознанный путь
// чтения, список «сохранено офлайн» и проксирование обзора/поиска.
package service

//go:generate mockgen -source=service.go -destination=../../mocks/mock_service.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/pribylovaa/story-reader/internal/config"
	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/retention"
	"github.com/pribylovaa/story-reader/internal/storage"
)

var (
	// ErrInvalidArgument - некорректные входные аргументы.
	// Транспорт: 400 invalid_argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstreamUnavailable — origin недоступен (сетевой сбой, 5xx) либо
	// операция требует сети, а оракул в состоянии offline.
	// Транспорт: 502 upstream_unavailable.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// StoryFetcher — контракт клиента origin (реализуется internal/upstream).
type StoryFetcher interface {
	// StoryByID загружает историю; редирект — *upstream.RedirectError,
	// отсутствие — upstream.ErrNotFound, сбой — upstream.ErrUnavailable.
	StoryByID(ctx context.Context, id string) (*models.Story, error)
	// ListStories проксирует листинг историй по теме.
	ListStories(ctx context.Context, opts models.ListOptions) (json.RawMessage, error)
	// SearchStories проксирует поиск.
	SearchStories(ctx context.Context, query string, opts models.ListOptions) (json.RawMessage, error)
}

// Connectivity — контракт оракула достижимости (реализуется internal/connectivity).
type Connectivity interface {
	// Online — текущее состояние «онлайн».
	Online() bool
	// ReportReachable — сигнал «достижимо», принимается на веру.
	ReportReachable(ctx context.Context)
	// ReportUnreachable — сигнал «недостижимо», верифицируется пробой.
	ReportUnreachable(ctx context.Context)
	// Subscribe — подписка на переходы состояния (emit только на смене).
	Subscribe() (<-chan bool, func())
}

// Service — описывает бизнес-логику story-reader.
type Service struct {
	storage storage.Storage
	origin  StoryFetcher
	network Connectivity
	policy  retention.Policy
}

// New создает новый экземпляр Service.
func New(st storage.Storage, origin StoryFetcher, network Connectivity, cfg config.Config) *Service {
	return &Service{
		storage: st,
		origin:  origin,
		network: network,
		policy: retention.Policy{
			TTL:        cfg.Cache.TTL,
			MaxRecords: cfg.Cache.MaxRecords,
		},
	}
}

// Online — текущее состояние оракула (реактивный источник для UI).
func (s *Service) Online() bool {
	return s.network.Online()
}

// SubscribeOnline — подписка на переходы online/offline.
func (s *Service) SubscribeOnline() (<-chan bool, func()) {
	return s.network.Subscribe()
}

// ReportHint принимает внешний сигнал о связности (например, от браузера
// читателя). Сигнал «достижимо» принимается сразу; «недостижимо» лишь
// запускает верификацию — сырой сигнал никогда не переводит оракул в
// offline сам по себе.
//
// Верификация выполняется в фоне на контексте, отвязанном от запроса:
// обрыв или дедлайн запроса-подсказки не должен сорвать пробу — сорванная
// проба выглядела бы как недостижимость и перевела бы оракул в offline
// при живой сети.
func (s *Service) ReportHint(ctx context.Context, reachable bool) {
	if reachable {
		s.network.ReportReachable(ctx)
		return
	}
	go s.network.ReportUnreachable(context.WithoutCancel(ctx))
}
