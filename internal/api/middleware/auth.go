package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth извлекает аутентифицированного актора из заголовков,
// проставленных API-шлюзом: X-User-ID и X-User-Role.
// Запросы без заголовков проходят дальше анонимно: гостевые
// операции (просмотр слотов, гостевое бронирование) их не требуют
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idHeader := r.Header.Get("X-User-ID")
		roleHeader := r.Header.Get("X-User-Role")

		if idHeader == "" || roleHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := strconv.ParseInt(idHeader, 10, 64)
		if err != nil || id <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		role := domain.ActorRole(roleHeader)
		switch role {
		case domain.RoleCustomer, domain.RolePro, domain.RoleAdmin:
		default:
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, domain.Actor{ID: id, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext возвращает актора запроса.
// Второй результат false для анонимных запросов
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
