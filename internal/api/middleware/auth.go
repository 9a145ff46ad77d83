package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BarbershopService/internal/api/handlers"
)

// UserIDHeader заголовок с идентификатором пользователя, проставляемый API-шлюзом
const UserIDHeader = "X-User-ID"

type userIDKey struct{}

// Auth требует валидный X-User-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID достает идентификатор пользователя, сохраненный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}

// WithUserID кладет идентификатор пользователя в контекст (для тестов обработчиков)
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}
