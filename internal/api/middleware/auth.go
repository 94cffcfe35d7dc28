package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-TruckQueueService/internal/api/handlers"
)

// HeaderUserName заголовок с именем сотрудника, оформляющего бронирование
// Аутентификацию выполняет шлюз перед сервисом
const HeaderUserName = "X-User-Name"

const msgMissingUser = "отсутствует заголовок " + HeaderUserName

type contextKey string

const recorderKey contextKey = "recorder"

// Auth требует заголовок X-User-Name и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := strings.TrimSpace(r.Header.Get(HeaderUserName))
		if recorder == "" {
			handlers.RespondUnauthorized(w, msgMissingUser)
			return
		}

		ctx := WithRecorder(r.Context(), recorder)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithRecorder кладет имя сотрудника в контекст
func WithRecorder(ctx context.Context, recorder string) context.Context {
	return context.WithValue(ctx, recorderKey, recorder)
}

// GetRecorder достает имя сотрудника из контекста
func GetRecorder(ctx context.Context) (string, bool) {
	recorder, ok := ctx.Value(recorderKey).(string)
	return recorder, ok && recorder != ""
}
