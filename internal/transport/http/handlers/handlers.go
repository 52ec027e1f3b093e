// handlers содержит REST-хендлеры story-reader: тонкий слой поверх
// сервисного ядра, собственной логики не несёт.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/story-reader/internal/service"
)

// Handlers агрегирует зависимости (сервисное ядро).
type Handlers struct {
	Svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{Svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
