package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/story-reader/internal/service"
	apierrors "github.com/pribylovaa/story-reader/internal/transport/http/errors"
)

// savedItem — элемент списка «сохранено офлайн».
type savedItem struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	CachedAt time.Time `json:"cached_at"`
}

type savedListResponse struct {
	Items []savedItem `json:"items"`
}

// ListSavedOffline — GET /offline: сохранённые офлайн истории, новейшие впереди.
// Сбой хранилища деградирует до пустого списка (см. сервисный слой).
func (h *Handlers) ListSavedOffline(w http.ResponseWriter, r *http.Request) {
	items := h.Svc.ListSavedOffline(r.Context())

	resp := savedListResponse{Items: make([]savedItem, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, savedItem{
			ID:       it.ID,
			Title:    it.Title,
			CachedAt: it.CachedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// RemoveSaved — DELETE /offline/{id}: явное удаление из офлайн-кэша.
// Идемпотентно: отсутствие записи — тоже 204.
func (h *Handlers) RemoveSaved(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.Svc.RemoveSaved(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
