// http собирает REST-поверхность story-reader поверх chi.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/story-reader/internal/service"
	"github.com/pribylovaa/story-reader/internal/transport/http/handlers"
	"github.com/pribylovaa/story-reader/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)

	h := handlers.New(svc)

	// SSE-стрим регистрируется вне группы с таймаутом: долгоживущее
	// соединение нельзя резать общим дедлайном запроса.
	root.Get("/status/events", h.StatusEvents)
	root.Get("/healthz", h.Healthz)
	root.Handle("/metrics", promhttp.Handler())

	root.Group(func(r chi.Router) {
		if opts.Timeout > 0 {
			r.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
		}
		registerRoutes(r, h)
	})

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// stories
	r.Get("/stories", h.BrowseStories)
	r.Get("/stories/{id}", h.GetStory)
	r.Get("/search", h.SearchStories)

	// offline
	r.Get("/offline", h.ListSavedOffline)
	r.Delete("/offline/{id}", h.RemoveSaved)

	// connectivity
	r.Get("/status", h.Status)
	r.Post("/status/hint", h.StatusHint)
}
