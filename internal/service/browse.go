package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/upstream"
	"github.com/pribylovaa/story-reader/pkg/log"
)

// BrowseStories проксирует листинг историй (обзор по темам) к origin.
// Обзор не кэшируется и офлайн не разрешается: без сети — ErrUpstreamUnavailable.
func (s *Service) BrowseStories(ctx context.Context, opts models.ListOptions) (json.RawMessage, error) {
	const op = "service.browse.BrowseStories"

	if !s.network.Online() {
		return nil, fmt.Errorf("%s: offline: %w", op, ErrUpstreamUnavailable)
	}

	body, err := s.origin.ListStories(ctx, opts)
	if err != nil {
		return nil, s.mapUpstreamErr(ctx, op, err)
	}

	return body, nil
}

// SearchStories проксирует поиск историй к origin. Поиск, как и обзор,
// требует сети.
func (s *Service) SearchStories(ctx context.Context, query string, opts models.ListOptions) (json.RawMessage, error) {
	const op = "service.browse.SearchStories"

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%s: empty query: %w", op, ErrInvalidArgument)
	}

	if !s.network.Online() {
		return nil, fmt.Errorf("%s: offline: %w", op, ErrUpstreamUnavailable)
	}

	body, err := s.origin.SearchStories(ctx, query, opts)
	if err != nil {
		return nil, s.mapUpstreamErr(ctx, op, err)
	}

	return body, nil
}

// mapUpstreamErr — общий маппинг ошибок origin для проксируемых выборок:
// сетевой сбой превращается в ErrUpstreamUnavailable и даёт оракулу
// подсказку о недостижимости (верифицируется пробой в фоне).
func (s *Service) mapUpstreamErr(ctx context.Context, op string, err error) error {
	if errors.Is(err, upstream.ErrUnavailable) {
		go s.network.ReportUnreachable(context.WithoutCancel(ctx))

		log.From(ctx).Warn("upstream_unavailable",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, ErrUpstreamUnavailable)
	}

	log.From(ctx).Error("upstream_error",
		slog.String("op", op),
		slog.String("err", err.Error()),
	)
	return fmt.Errorf("%s: %w", op, err)
}
