// models содержит доменные сущности story-reader.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"encoding/json"
	"time"
)

// Story — история (статья) в том виде, в котором её отдаёт origin.
//
// Особенности:
//   - ID — непрозрачный строковый идентификатор, формат задаёт origin;
//   - Document — полный денормализованный документ истории (заголовок,
//     выжимки, доказательная база и т.д.) как есть. Схема документа
//     эволюционирует на стороне origin, поэтому ядро хранит его
//     непрозрачным блобом и не валидирует.
type Story struct {
	// ID — уникальный идентификатор истории.
	ID string
	// Title - заголовок истории (дублируется из документа для списков).
	Title string
	// Document - полный JSON-документ истории.
	Document json.RawMessage
}

// CachedRecord — снимок истории в офлайн-хранилище.
//
// Особенности:
//   - на один ID — не более одной записи (запись идемпотентна: повторное
//     сохранение заменяет Payload и сбрасывает CachedAt/ExpiresAt);
//   - ExpiresAt = CachedAt + TTL хранится денормализованно, чтобы проверка
//     истечения при чтении не требовала знания политики;
//   - временные метки — в UTC.
type CachedRecord struct {
	// ID — идентификатор истории (первичный ключ).
	ID string
	// Title - заголовок для списка «сохранено офлайн».
	Title string
	// Payload - неизменяемый снимок документа истории на момент кэширования.
	Payload json.RawMessage
	// CachedAt - момент записи; используется и для TTL, и для порядка вытеснения.
	CachedAt time.Time
	// ExpiresAt - момент, после которого запись логически удалена.
	ExpiresAt time.Time
}

// SavedSummary — элемент списка «сохранено офлайн» (без тела документа).
type SavedSummary struct {
	ID       string
	Title    string
	CachedAt time.Time
}

// ListOptions — параметры выборки списков историй у origin.
type ListOptions struct {
	Topic     string
	Limit     int32
	PageToken string
}
