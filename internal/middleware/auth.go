package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/avoronkov/todo-task-api/internal/auth"
	"github.com/avoronkov/todo-task-api/pkg/respond"
)

type contextKey string

const subjectKey contextKey = "auth_subject"

// Auth пропускает дальше только запросы с валидным bearer-токеном.
// Отказ происходит до любой логики хэндлеров.
func Auth(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Error(w, r, http.StatusUnauthorized, "authorization header is required")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respond.Error(w, r, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject возвращает subject токена из контекста запроса
func Subject(ctx context.Context) string {
	if s, ok := ctx.Value(subjectKey).(string); ok {
		return s
	}
	return ""
}
