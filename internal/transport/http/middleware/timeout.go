package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout ограничивает время обработки запроса общим дедлайном.
// Уже выставленный дедлайн (например, от вышестоящего прокси) уважается.
// Значение <=0 делает мидлвар no-op.
//
// Не применяется к стриму /status/events: SSE живёт дольше любого
// разумного дедлайна запроса (см. router).
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, ok := ctx.Deadline(); !ok {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
