package handlers

import (
	"fmt"
	"net/http"

	"github.com/pribylovaa/story-reader/internal/service"
	apierrors "github.com/pribylovaa/story-reader/internal/transport/http/errors"
)

type statusResponse struct {
	Online bool `json:"online"`
}

// Status — GET /status: снимок состояния оракула связности.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Online: h.Svc.Online()})
}

// hintRequest — внешний сигнал о связности от клиента (аналог браузерных
// событий online/offline, пересылаемых фронтом).
type hintRequest struct {
	Reachable bool `json:"reachable"`
}

// StatusHint — POST /status/hint: подсказка оракулу. «Достижимо»
// принимается на веру; «недостижимо» лишь запускает верификацию пробой,
// поэтому ответ не ждёт её результата.
func (h *Handlers) StatusHint(w http.ResponseWriter, r *http.Request) {
	var req hintRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	h.Svc.ReportHint(r.Context(), req.Reachable)

	w.WriteHeader(http.StatusAccepted)
}

// StatusEvents — GET /status/events: SSE-стрим переходов online/offline.
// Первое событие — текущее значение, дальше — только переходы (без шума
// периодических проб). Стрим живёт до закрытия соединения клиентом.
func (h *Handlers) StatusEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		apierrors.WriteError(w, r, nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ch, cancel := h.Svc.SubscribeOnline()
	defer cancel()

	// Стартовое значение — подписка отдаёт только переходы.
	writeEvent(w, h.Svc.Online())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case online, open := <-ch:
			if !open {
				return
			}
			writeEvent(w, online)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, online bool) {
	fmt.Fprintf(w, "data: {\"online\": %t}\n\n", online)
}

// Healthz — GET /healthz: живость сервиса (и естественная цель пробы,
// когда story-reader сам стоит за фронтом).
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
