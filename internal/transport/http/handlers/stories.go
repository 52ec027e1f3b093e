package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/story-reader/internal/models"
	"github.com/pribylovaa/story-reader/internal/service"
	apierrors "github.com/pribylovaa/story-reader/internal/transport/http/errors"
)

// storyResponse — ответ чтения истории. Kind повторяет исходы сервисного
// слоя, чтобы фронт ветвился по одному полю.
type storyResponse struct {
	Kind        string          `json:"kind"`
	Story       json.RawMessage `json:"story,omitempty"`
	CanonicalID string          `json:"canonical_id,omitempty"`
	FromCache   bool            `json:"from_cache,omitempty"`
}

// GetStory — GET /stories/{id}: офлайн-осознанное чтение истории.
//
// Исходы:
//   - 200 kind=ok — документ истории (живое чтение или кэш);
//   - 200 kind=redirect — история перемещена, фронт переходит на canonical_id;
//   - 404 not_found — истории нет у origin;
//   - 503 offline_missing — офлайн и в кэше записи нет: фронт показывает
//     «недоступно офлайн», а не общую ошибку;
//   - 502 upstream_unavailable — онлайн-чтение сорвалось.
func (h *Handlers) GetStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	res, err := h.Svc.GetStoryForReading(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	switch res.Kind {
	case service.KindOK:
		// Источник документа дублируется заголовком: его видят логи
		// доступа и промежуточные кэши, не разбирающие тело.
		if res.FromCache {
			w.Header().Set("X-Offline-Cache", "hit")
		} else {
			w.Header().Set("X-Offline-Cache", "miss")
		}
		writeJSON(w, http.StatusOK, storyResponse{
			Kind:      "ok",
			Story:     res.Story.Document,
			FromCache: res.FromCache,
		})
	case service.KindRedirect:
		writeJSON(w, http.StatusOK, storyResponse{
			Kind:        "redirect",
			CanonicalID: res.CanonicalID,
		})
	case service.KindNotFound:
		apierrors.WriteCode(w, r, http.StatusNotFound, "not_found", "story not found")
	case service.KindOfflineMissing:
		apierrors.WriteCode(w, r, http.StatusServiceUnavailable, "offline_missing", "story not available offline")
	default:
		apierrors.WriteError(w, r, nil)
	}
}

// BrowseStories — GET /stories?topic=&limit=&page_token=: обзор по темам,
// прозрачное проксирование листинга origin (офлайн не разрешается).
func (h *Handlers) BrowseStories(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptionsFromQuery(r)
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	body, err := h.Svc.BrowseStories(r.Context(), opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeRaw(w, body)
}

// SearchStories — GET /search?q=: поиск историй, проксирование origin.
func (h *Handlers) SearchStories(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptionsFromQuery(r)
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	body, err := h.Svc.SearchStories(r.Context(), r.URL.Query().Get("q"), opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeRaw(w, body)
}

// listOptionsFromQuery разбирает общие параметры выборки.
func listOptionsFromQuery(r *http.Request) (models.ListOptions, error) {
	var opts models.ListOptions

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return opts, err
		}
		opts.Limit = int32(n)
	}

	opts.Topic = r.URL.Query().Get("topic")
	opts.PageToken = r.URL.Query().Get("page_token")

	return opts, nil
}

// writeRaw отдаёт проксируемый JSON origin как есть.
func writeRaw(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
